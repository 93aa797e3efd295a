// Package prompt provides interactive terminal prompts for the IAM CLI.
//
// Purpose:
//
//	Read usernames, passwords and confirmations from the operator. Password
//	reads suppress echo when stdin is a real terminal and fall back to plain
//	line reads otherwise, so piped input and tests behave the same way.
//
// Dependencies:
//   - golang.org/x/term: raw-mode password reads on terminals
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads interactive input from an operator.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// New creates a Prompter reading from in and writing prompts to out.
// If in is a terminal file descriptor, password input is read with echo
// suppressed.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
	if f, ok := in.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			p.fd = fd
			p.tty = true
		}
	}
	return p
}

// Input prompts for a line of echoed input. An empty reply returns the
// default value, which is shown in the prompt when non-empty.
func (p *Prompter) Input(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// Password prompts for a line of input with echo suppressed on terminals.
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	if p.tty {
		raw, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	return p.readLine()
}

// Confirm asks a yes/no question and reports whether the operator agreed.
// Only "y" and "yes" (case-insensitive) count as agreement.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
