// Package console реализует построчный диалог с покупателем поверх io.Reader/io.Writer.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed возвращается, когда поток ввода закончился.
var ErrInputClosed = errors.New("console input closed")

// Prompter печатает приглашения и читает ответы по одной строке.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter создаёт диалог поверх переданных потоков.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Out возвращает поток вывода диалога.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Printf пишет форматированный текст без перевода строки.
func (p *Prompter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Println пишет строку с переводом строки.
func (p *Prompter) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// Ask печатает приглашение и возвращает следующую строку ввода без перевода строки.
// Длина строки не ограничена; последняя строка без перевода строки тоже возвращается.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.Printf("%s", prompt)

	line, err := p.reader.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		if line == "" {
			return "", ErrInputClosed
		}
	case err != nil:
		return "", fmt.Errorf("read console input: %w", err)
	}

	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
