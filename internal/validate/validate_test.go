package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteger(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{input: "0", want: 0, ok: true},
		{input: "42", want: 42, ok: true},
		{input: "-7", want: -7, ok: true},
		{input: "+3", want: 3, ok: true},
		{input: "", ok: false},
		{input: "abc", ok: false},
		{input: "12abc", ok: false},
		{input: "1.5", ok: false},
		{input: "3 ", ok: false},
		{input: " 5", want: 5, ok: true},
		{input: "\t5", want: 5, ok: true},
		{input: "  -8", want: -8, ok: true},
		{input: " ", ok: false},
		{input: " 5 ", ok: false},
		{input: "2147483647", want: 2147483647, ok: true},
		{input: "2147483648", ok: false},
		{input: "99999999999999999999", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Integer(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMenuNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{name: "lower bound", input: "1", want: 1, ok: true},
		{name: "upper bound", input: "4", want: 4, ok: true},
		{name: "below range", input: "0", ok: false},
		{name: "above range", input: "5", ok: false},
		{name: "leading space", input: " 2", ok: false},
		{name: "trailing space", input: "2 ", ok: false},
		{name: "inner space", input: "1 2", ok: false},
		{name: "tab", input: "2\t", ok: false},
		{name: "not a number", input: "two", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MenuNumber(tt.input, 1, 4)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPaymentAmount_Valid(t *testing.T) {
	cases := map[string]string{
		"12":     "12",
		"12.5":   "12.5",
		"-3.0":   "-3",
		".5":     "0.5",
		"-.25":   "-0.25",
		"0":      "0",
		"150.00": "150",
	}

	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			got, ok := PaymentAmount(input)
			require.True(t, ok)
			assert.True(t, got.Equal(decimal.RequireFromString(want)), "got %s want %s", got, want)
		})
	}
}

func TestPaymentAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", "-", ".", "12.5.3", "abc", "12.", "1e3", " 12", "12 ", "+5", "--1"} {
		t.Run(input, func(t *testing.T) {
			_, ok := PaymentAmount(input)
			assert.False(t, ok)
		})
	}
}

func TestYesNo(t *testing.T) {
	accepted := map[string]bool{"y": true, "Y": true, "n": false, "N": false}
	for input, wantYes := range accepted {
		yes, ok := YesNo(input)
		require.True(t, ok, input)
		assert.Equal(t, wantYes, yes, input)
	}

	for _, input := range []string{"", "yes", "Yes", "no", "NO", " y", "y ", "1"} {
		_, ok := YesNo(input)
		assert.False(t, ok, "input %q must be rejected", input)
	}
}
