package repl

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// LineReader is the subset of term.Terminal the interactive loop needs.
type LineReader interface {
	ReadLine() (string, error)
}

// RunTerminal runs a session with line editing and history when stdin is a
// terminal, and falls back to Session.Run for pipes and files. newSession
// receives the writer the session prints to and the writer diagnostics such
// as the trace log go to. In raw mode both are the terminal, which turns
// line feeds into the CRLF pairs raw mode needs.
func RunTerminal(stdin *os.File, stdout, stderr io.Writer, newSession func(out, logs io.Writer) *Session) error {
	fd := int(stdin.Fd())
	if !term.IsTerminal(fd) {
		return newSession(stdout, stderr).Run(stdin)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrap(err, "switching terminal to raw mode")
	}
	defer term.Restore(fd, state)

	screen := struct {
		io.Reader
		io.Writer
	}{stdin, stdout}
	t := term.NewTerminal(screen, "")
	s := newSession(t, t)
	t.SetPrompt(s.Prompt())
	return s.Loop(t)
}

// Loop drives the session from a line reader. io.EOF ends the session
// without an error.
func (s *Session) Loop(lines LineReader) error {
	if err := s.Welcome(); err != nil {
		return err
	}
	for {
		line, err := lines.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		done, err := s.Eval(line)
		if err != nil || done {
			return err
		}
	}
}
