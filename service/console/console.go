package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ErrNoOptions is returned by Choose when there is nothing to choose from.
var ErrNoOptions = errors.New("no options to choose from")

// Console is a line-based prompt/response channel. Reads block the calling
// cycle until a full line (or EOF) arrives.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	mux sync.Mutex
}

// New returns a Console over stdin and stdout.
func New() *Console {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO lets callers override the input and output streams.
func NewWithIO(in io.Reader, out io.Writer) *Console {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Console{in: bufio.NewReader(in), out: out}
}

// Ask prints prompt and returns the next input line trimmed of whitespace.
// io.EOF is returned only when no text was read at all.
func (c *Console) Ask(prompt string) (string, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.ask(prompt)
}

func (c *Console) ask(prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = "?"
	}
	fmt.Fprint(c.out, prompt+" ")
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. y, yes and 1 confirm; n, no and 0 decline;
// anything else repeats the question.
func (c *Console) Confirm(prompt string) (bool, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	for {
		answer, err := c.ask(prompt + " [y/n]")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes", "1":
			return true, nil
		case "n", "no", "0":
			return false, nil
		}
		fmt.Fprintln(c.out, "please answer y or n")
	}
}

// Choose lists options and returns the one picked by value (case-insensitive)
// or by 1-based index; anything else repeats the question.
func (c *Console) Choose(prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}
	c.mux.Lock()
	defer c.mux.Unlock()

	var text strings.Builder
	text.WriteString(strings.TrimSpace(prompt))
	for i, option := range options {
		if i == 0 {
			text.WriteString(" (")
		} else {
			text.WriteString(", ")
		}
		text.WriteString(strconv.Itoa(i+1) + ":" + option)
	}
	text.WriteString(")")
	for {
		answer, err := c.ask(text.String())
		if err != nil {
			return "", err
		}
		if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(options) {
			return options[idx-1], nil
		}
		for _, option := range options {
			if strings.EqualFold(option, answer) {
				return option, nil
			}
		}
	}
}

// Println writes one diagnostic line.
func (c *Console) Println(args ...any) {
	c.mux.Lock()
	defer c.mux.Unlock()
	fmt.Fprintln(c.out, args...)
}
