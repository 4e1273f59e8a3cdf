package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"gostack/pkg/config"
	"gostack/pkg/grid"
	"gostack/pkg/interp"
	"gostack/pkg/repl"
)

// console is the text state behind the window: a transcript of everything
// printed so far plus the line being edited.
type console struct {
	session    *repl.Session
	out        bytes.Buffer
	transcript strings.Builder
	input      []rune
	history    []string
	histPos    int
	done       bool
}

func newConsole(cfg *config.Config, logger *slog.Logger) *console {
	plain := *cfg
	plain.Color = false // ANSI escapes cannot be drawn
	c := &console{}
	c.session = repl.NewSession(&plain, &c.out, interp.WithLogger(logger))
	c.report(c.session.Welcome())
	c.flush()
	return c
}

// report adds err to the transcript. A nil err is ignored.
func (c *console) report(err error) {
	if err != nil {
		fmt.Fprintf(&c.out, "error: %v\n", err)
	}
}

func (c *console) flush() {
	c.transcript.Write(c.out.Bytes())
	c.out.Reset()
}

// load runs a whole script before the first prompt.
func (c *console) load(name, src string) {
	if err := c.session.Interpreter().Exec(src); err != nil {
		fmt.Fprintf(&c.out, "error: %s: %v\n", name, err)
	}
	c.flush()
}

func (c *console) typeRune(r rune) {
	if !unicode.IsPrint(r) && r != '\t' {
		return
	}
	c.input = append(c.input, r)
}

func (c *console) backspace() {
	if len(c.input) > 0 {
		c.input = c.input[:len(c.input)-1]
	}
}

func (c *console) submit() {
	line := string(c.input)
	c.transcript.WriteString(c.session.Prompt() + line + "\n")
	c.input = c.input[:0]
	if strings.TrimSpace(line) != "" {
		c.history = append(c.history, line)
	}
	c.histPos = len(c.history)

	done, err := c.session.Eval(line)
	c.report(err)
	c.flush()
	c.done = done
}

func (c *console) historyPrev() {
	if c.histPos == 0 {
		return
	}
	c.histPos--
	c.input = []rune(c.history[c.histPos])
}

func (c *console) historyNext() {
	if c.histPos >= len(c.history) {
		return
	}
	c.histPos++
	if c.histPos == len(c.history) {
		c.input = c.input[:0]
		return
	}
	c.input = []rune(c.history[c.histPos])
}

func (c *console) editLine() string {
	return c.session.Prompt() + string(c.input)
}

// rows wraps the transcript and the edit line to cols. When the edit line
// exactly fills its last row an empty row is added for the cursor.
func (c *console) rows(cols int) []string {
	rows := grid.Wrap(c.transcript.String()+c.editLine(), cols)
	if n := utf8.RuneCountInString(c.editLine()); cols > 0 && n > 0 && n%cols == 0 {
		rows = append(rows, "")
	}
	return rows
}

// view returns the last rows screen rows, wrapped to cols.
func (c *console) view(cols, rows int) []string {
	return grid.Tail(c.rows(cols), rows)
}

// cursor returns the cell just after the edit line, in view coordinates. It
// always sits on the last row of the view.
func (c *console) cursor(cols, rows int) (x, y int) {
	x, _ = grid.GetGridCoords(utf8.RuneCountInString(c.editLine()), cols)
	return x, len(c.view(cols, rows)) - 1
}
