// Package repl runs an interactive session on top of a single interpreter,
// so bindings, procedures and the stack carry over from line to line.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"gostack/pkg/config"
	"gostack/pkg/interp"
)

const helpText = `Enter statements to run them against the shared stack.
  :stack   show the stack, bottom first
  :env     list bindings and procedures
  :reset   clear the stack, bindings and procedures
  :help    show this message
  exit     leave the session (also quit)`

type Session struct {
	in     *interp.Interpreter
	out    io.Writer
	prompt string
	banner bool
	errs   *color.Color
}

// NewSession builds a session that writes program output and diagnostics
// to out. Extra interpreter options are applied after the output option.
func NewSession(cfg *config.Config, out io.Writer, opts ...interp.Option) *Session {
	errs := color.New(color.FgRed)
	if !cfg.Color {
		errs.DisableColor()
	}
	return &Session{
		in:     interp.New(append([]interp.Option{interp.WithOutput(out)}, opts...)...),
		out:    out,
		prompt: cfg.Prompt,
		banner: cfg.Banner,
		errs:   errs,
	}
}

// Interpreter returns the interpreter shared by every line.
func (s *Session) Interpreter() *interp.Interpreter { return s.in }

func (s *Session) Prompt() string { return s.prompt }

// Eval runs one line of input. It reports done when the line asks to end
// the session. Program errors are printed, not returned; the returned error
// is only set when writing to the output fails.
func (s *Session) Eval(line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case ":help":
		_, err = fmt.Fprintln(s.out, helpText)
	case ":stack":
		err = s.printStack()
	case ":env":
		err = s.printEnv()
	case ":reset":
		s.in.Reset()
	default:
		if strings.HasPrefix(line, ":") {
			_, err = s.errs.Fprintf(s.out, "unknown command %s, try :help\n", line)
			return false, err
		}
		if execErr := s.in.Exec(line); execErr != nil {
			_, err = s.errs.Fprintf(s.out, "error: %v\n", execErr)
		}
	}
	return false, err
}

func (s *Session) printStack() error {
	stack := s.in.Stack()
	if len(stack) == 0 {
		_, err := fmt.Fprintln(s.out, "(empty)")
		return err
	}
	for i, v := range stack {
		if _, err := fmt.Fprintf(s.out, "%d: %s\n", i, v.GoString()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) printEnv() error {
	env := s.in.Environment()
	vars, procs := env.Variables(), env.Procedures()
	if len(vars) == 0 && len(procs) == 0 {
		_, err := fmt.Fprintln(s.out, "(empty)")
		return err
	}
	for _, name := range vars {
		v, _ := env.Lookup(name)
		if _, err := fmt.Fprintf(s.out, "%s = %s\n", name, v.GoString()); err != nil {
			return err
		}
	}
	for _, name := range procs {
		body, _ := env.Procedure(name)
		if _, err := fmt.Fprintf(s.out, "proc %s (%d statements)\n", name, len(body)); err != nil {
			return err
		}
	}
	return nil
}

// Welcome writes the banner if the configuration asks for one.
func (s *Session) Welcome() error {
	if !s.banner {
		return nil
	}
	_, err := fmt.Fprintln(s.out, "gostack REPL. Type :help for commands, exit to leave.")
	return err
}

// Run reads lines from r until end of input or an exit command. Prompts are
// written before every line.
func (s *Session) Run(r io.Reader) error {
	if err := s.Welcome(); err != nil {
		return err
	}
	scanner := bufio.NewScanner(r)
	for {
		if _, err := io.WriteString(s.out, s.prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(s.out)
			return err
		}
		done, err := s.Eval(scanner.Text())
		if err != nil || done {
			return err
		}
	}
}
