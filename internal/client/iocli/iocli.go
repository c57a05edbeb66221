// Package iocli абстрагирует терминальный ввод-вывод команд,
// чтобы команды можно было тестировать без реального терминала.
package iocli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// IO терминальный ввод-вывод команды
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// Errorf пишет сообщение об ошибке в поток ошибок
	Errorf(format string, a ...any)
	// ReadInput читает строку с подсказкой, обрезая пробелы
	ReadInput(prompt string) (string, error)
	// ReadPassword читает строку без отображения на экране
	ReadPassword(prompt string) (string, error)
}

// Stdio реализует IO поверх stdin/stdout/stderr процесса
type Stdio struct {
	reader *bufio.Reader
}

// NewStdio создает терминальный IO
func NewStdio() IO {
	return &Stdio{reader: bufio.NewReader(os.Stdin)}
}

func (s *Stdio) Println(a ...any) {
	fmt.Println(a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}

func (s *Stdio) Errorf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)
	fd := int(os.Stdin.Fd())
	pwBytes, err := term.ReadPassword(fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
