// Package prompt reads answers from the terminal for commands that were not
// given everything on the command line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when a secret is needed but stdin is not a
// terminal.
var ErrNoTerminal = errors.New("prompt: stdin is not a terminal")

// readPassword and isTerminal are replaced in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Prompter asks questions on Out and reads answers from In.
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer
}

// New returns a Prompter on stdin and w.
func New(in io.Reader, w io.Writer) *Prompter {
	return &Prompter{In: bufio.NewReader(in), Out: w}
}

// Line prints label and reads one trimmed line. When the user enters nothing
// the default def is returned.
func (p *Prompter) Line(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]", label, def)
	}
	if _, err := fmt.Fprintf(p.Out, "%s: ", label); err != nil {
		return "", err
	}
	line, err := p.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		if errors.Is(err, io.EOF) && def != "" {
			return def, nil
		}
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Multiline reads lines until an empty one and joins them with newlines.
func (p *Prompter) Multiline(label string) (string, error) {
	if _, err := fmt.Fprintf(p.Out, "%s (empty line to finish)\n", label); err != nil {
		return "", err
	}
	var lines []string
	for {
		line, err := p.In.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// Password reads a secret without echo from the terminal on stdin.
func (p *Prompter) Password(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", ErrNoTerminal
	}
	if _, err := fmt.Fprintf(p.Out, "%s: ", label); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	_, _ = fmt.Fprintln(p.Out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Confirm asks a yes/no question. Anything but y or yes is no.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Line(label+" (y/N)", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ReadSecret reads one line from r, for --password-stdin.
func ReadSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
