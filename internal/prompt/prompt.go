// internal/prompt/prompt.go

// Package prompt reads operator answers from a terminal or a pipe.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrInputCancelled is returned when input ends before an answer is given.
var ErrInputCancelled = errors.New("input cancelled")

type Prompter struct {
	in         *bufio.Reader
	out        io.Writer
	readSecret func() ([]byte, error)
}

// New reads answers from in. Secret answers are read without echo when in
// is a terminal, and as plain lines otherwise.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.readSecret = func() ([]byte, error) {
			data, err := term.ReadPassword(fd)
			fmt.Fprintln(out) // newline after hidden input
			return data, err
		}
	}
	return p
}

func NewStdio() *Prompter {
	return New(os.Stdin, os.Stdout)
}

// Interactive reports whether secrets are read from a terminal.
func (p *Prompter) Interactive() bool {
	return p.readSecret != nil
}

// Text asks for a value. An empty answer takes def; a required prompt asks
// again until it gets something.
func (p *Prompter) Text(label, def string, required bool) (string, error) {
	return p.Validated(label, def, required, nil)
}

// Validated is Text with an extra check; a failing answer is reported and
// asked again.
func (p *Prompter) Validated(label, def string, required bool, validate func(string) error) (string, error) {
	shown := label
	if def != "" {
		shown = fmt.Sprintf("%s [%s]", label, def)
	}
	for {
		fmt.Fprintf(p.out, "  ? %s: ", shown)
		value, err := p.readLine()
		if err != nil {
			return "", err
		}
		if value == "" {
			value = def
		}
		if value == "" && required {
			fmt.Fprintf(p.out, "    %s is required\n", label)
			continue
		}
		if validate != nil && value != "" {
			if err := validate(value); err != nil {
				fmt.Fprintf(p.out, "    %v\n", err)
				continue
			}
		}
		return value, nil
	}
}

// Secret asks for a value without echoing it. When keep is non-empty an
// empty answer returns keep, so an existing secret can be left unchanged.
func (p *Prompter) Secret(label, keep string, required bool) (string, error) {
	shown := label
	if keep != "" {
		shown = label + " [keep current]"
	}
	for {
		fmt.Fprintf(p.out, "  ? %s: ", shown)
		var value string
		if p.readSecret != nil {
			data, err := p.readSecret()
			if errors.Is(err, io.EOF) {
				return "", ErrInputCancelled
			}
			if err != nil {
				return "", err
			}
			value = clean(string(data))
		} else {
			var err error
			if value, err = p.readLine(); err != nil {
				return "", err
			}
		}
		if value == "" {
			value = keep
		}
		if value == "" && required {
			fmt.Fprintf(p.out, "    %s is required\n", label)
			continue
		}
		return value, nil
	}
}

func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "  ? %s [%s]: ", label, hint)
		value, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(value) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "    answer y or n")
	}
}

// Select offers numbered options and accepts either the number or the
// option text.
func (p *Prompter) Select(label string, options []string, def string) (string, error) {
	fmt.Fprintf(p.out, "  ? %s\n", label)
	for i, o := range options {
		marker := " "
		if o == def {
			marker = "*"
		}
		fmt.Fprintf(p.out, "    %s %d) %s\n", marker, i+1, o)
	}
	for {
		if def != "" {
			fmt.Fprintf(p.out, "  > choice [%s]: ", def)
		} else {
			fmt.Fprint(p.out, "  > choice: ")
		}
		value, err := p.readLine()
		if err != nil {
			return "", err
		}
		if value == "" && def != "" {
			return def, nil
		}
		if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, o := range options {
			if strings.EqualFold(value, o) {
				return o, nil
			}
		}
		fmt.Fprintf(p.out, "    choose 1-%d\n", len(options))
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return clean(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputCancelled
		}
		return "", err
	}
	return clean(line), nil
}

// clean drops the line terminator and any whitespace picked up by pasting.
func clean(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\r\n"))
}
