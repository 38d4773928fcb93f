// Package prompt asks the user for setup values and confirmations.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt or input ends.
var ErrAborted = errors.New("aborted")

// Prompter asks the user questions.
type Prompter interface {
	// Ask returns one line of input for label. Secret input is not echoed
	// where the implementation supports it.
	Ask(label string, secret bool) (string, error)

	// Confirm asks a yes/no question. The default answer is no.
	Confirm(question string) (bool, error)
}

// New returns a Form prompter when in is a terminal, otherwise a Line
// prompter reading from in and writing prompts to out.
func New(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return &Form{}
	}
	return NewLine(in, out)
}

// Line reads answers line by line. Used when stdin is not a terminal.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

// NewLine creates a Line prompter.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

func (l *Line) readLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask implements Prompter. Secret input is read like any other line.
func (l *Line) Ask(label string, secret bool) (string, error) {
	fmt.Fprintf(l.w, "%s: ", label)
	return l.readLine()
}

// Confirm implements Prompter. Only "y" and "yes" (any case) confirm.
func (l *Line) Confirm(question string) (bool, error) {
	fmt.Fprintf(l.w, "%s [y/N] ", question)
	answer, err := l.readLine()
	if errors.Is(err, ErrAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Form prompts with interactive terminal forms.
type Form struct{}

// Ask implements Prompter.
func (f *Form) Ask(label string, secret bool) (string, error) {
	var value string
	input := huh.NewInput().
		Title(label).
		Value(&value)
	if secret {
		input = input.EchoMode(huh.EchoModePassword)
	}

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", formError(err)
	}
	return value, nil
}

// Confirm implements Prompter.
func (f *Form) Confirm(question string) (bool, error) {
	var ok bool
	confirm := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return fmt.Errorf("form error: %w", err)
}
