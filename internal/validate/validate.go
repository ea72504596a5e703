// Package validate разбирает сырой ввод пользователя в типизированные значения.
// Функции чистые: не пишут в консоль и не паникуют, результат сообщается флагом ok.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// paymentPattern — необязательный минус, цифры, необязательная дробная часть.
// Голый знак или голая точка не проходят.
var paymentPattern = regexp.MustCompile(`^-?\d*\.?\d+$`)

// Integer разбирает строку целиком как десятичное целое в пределах 32 бит.
// Ведущие пробельные символы пропускаются, хвостовые делают ввод некорректным.
func Integer(input string) (int, bool) {
	v, err := strconv.ParseInt(strings.TrimLeftFunc(input, unicode.IsSpace), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// MenuNumber разбирает номер пункта меню в диапазоне [min, max] включительно.
// Ввод с пробельными символами отклоняется, даже если число корректно.
func MenuNumber(input string, min, max int) (int, bool) {
	if strings.IndexFunc(input, unicode.IsSpace) >= 0 {
		return 0, false
	}
	v, ok := Integer(input)
	if !ok {
		return 0, false
	}
	if v < min || v > max {
		return 0, false
	}
	return v, true
}

// PaymentAmount разбирает сумму оплаты. Отрицательные суммы синтаксически допустимы,
// достаточность проверяет вызывающий код.
func PaymentAmount(input string) (decimal.Decimal, bool) {
	if !paymentPattern.MatchString(input) {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// YesNo принимает ровно y, Y, n, N. yes=true для y/Y.
func YesNo(input string) (yes bool, ok bool) {
	switch input {
	case "y", "Y":
		return true, true
	case "n", "N":
		return false, true
	default:
		return false, false
	}
}
