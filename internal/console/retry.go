package console

import (
	"context"
	"errors"
	"fmt"
)

// Rejection — отказ принять ввод. Message показывается пользователю перед повтором вопроса.
type Rejection struct {
	Message string
	Err     error
}

// Reject оборачивает причину отказа в сообщение для пользователя.
func Reject(cause error, format string, args ...any) error {
	return &Rejection{Message: fmt.Sprintf(format, args...), Err: cause}
}

func (r *Rejection) Error() string {
	if r.Err == nil {
		return r.Message
	}
	return r.Message + ": " + r.Err.Error()
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

// AskUntil повторяет вопрос, пока parse не примет ответ.
// Отказ (*Rejection) печатается и вопрос задаётся снова, число попыток не ограничено.
// Любая другая ошибка, включая ErrInputClosed и отмену контекста, прерывает цикл.
func AskUntil[T any](ctx context.Context, p *Prompter, prompt string, parse func(raw string) (T, error)) (T, error) {
	var zero T
	for {
		raw, err := p.Ask(ctx, prompt)
		if err != nil {
			return zero, err
		}

		value, err := parse(raw)
		if err == nil {
			return value, nil
		}

		var rejection *Rejection
		if !errors.As(err, &rejection) {
			return zero, err
		}
		p.Println(rejection.Message)
	}
}
