package console

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotEven = errors.New("not even")

func parseEven(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Reject(err, "Please enter a number.")
	}
	if v%2 != 0 {
		return 0, Reject(errNotEven, "Please enter an even number.")
	}
	return v, nil
}

func TestAskUntil_RetriesOnRejection(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("x\n3\n4\n"), &out)

	v, err := AskUntil(context.Background(), p, "n? ", parseEven)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, "n? Please enter a number.\nn? Please enter an even number.\nn? ", out.String())
}

func TestAskUntil_StopsOnInputClosed(t *testing.T) {
	p := NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{})

	_, err := AskUntil(context.Background(), p, "n? ", parseEven)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestAskUntil_StopsOnUnexpectedError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPrompter(strings.NewReader("1\n2\n"), &bytes.Buffer{})

	_, err := AskUntil(context.Background(), p, "n? ", func(string) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRejection_Unwrap(t *testing.T) {
	err := Reject(errNotEven, "odd %d", 3)

	var rejection *Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, "odd 3", rejection.Message)
	assert.ErrorIs(t, err, errNotEven)
}
