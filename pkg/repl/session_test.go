package repl

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostack/pkg/config"
)

func plainConfig() *config.Config {
	cfg := config.Default()
	cfg.Color = false
	cfg.Banner = false
	return cfg
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(plainConfig(), &out)

	input := "10 bind x\nproc p do x 1 + end\ncall p print\nexit\n1 print\n"
	require.NoError(t, s.Run(strings.NewReader(input)))
	assert.Equal(t, "> > > 11\n> ", out.String())
}

func TestRunEndOfInput(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(plainConfig(), &out)
	require.NoError(t, s.Run(strings.NewReader("2 3 + print")))
	assert.Equal(t, "> 5\n> \n", out.String())
}

func TestErrorsDoNotEndSession(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(plainConfig(), &out)

	require.NoError(t, s.Run(strings.NewReader("+\nmissing\n\"open\n1 print\n")))
	assert.Equal(t, strings.Join([]string{
		"> error: Addition requires at least 2 items on the stack",
		"> error: identifier 'missing' does not exist",
		"> error: string is not terminated before end of input",
		"> 1",
		"> ",
	}, "\n")+"\n", out.String())
}

func TestMetaCommands(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(plainConfig(), &out)

	eval := func(line string) string {
		t.Helper()
		out.Reset()
		done, err := s.Eval(line)
		require.NoError(t, err)
		assert.False(t, done)
		return out.String()
	}

	assert.Equal(t, "(empty)\n", eval(":stack"))
	assert.Equal(t, "(empty)\n", eval(":env"))

	eval(`1 "two" true`)
	assert.Equal(t, "0: 1\n1: \"two\"\n2: true\n", eval(":stack"))

	eval("drop drop bind n proc inc do n 1 + bind n end")
	assert.Equal(t, "n = 1\nproc inc (4 statements)\n", eval(":env"))

	assert.Empty(t, eval(":reset"))
	assert.Equal(t, "(empty)\n", eval(":env"))
	assert.Empty(t, s.Interpreter().Stack())

	assert.Contains(t, eval(":help"), ":stack")
	assert.Equal(t, "unknown command :nope, try :help\n", eval(":nope"))
}

func TestExitCommands(t *testing.T) {
	s := NewSession(plainConfig(), io.Discard)
	for _, line := range []string{"exit", "quit", "  exit  "} {
		done, err := s.Eval(line)
		require.NoError(t, err)
		assert.True(t, done, line)
	}
}

func TestBanner(t *testing.T) {
	cfg := plainConfig()
	cfg.Banner = true
	cfg.Prompt = "gs> "

	var out bytes.Buffer
	s := NewSession(cfg, &out)
	require.NoError(t, s.Run(strings.NewReader("")))
	assert.True(t, strings.HasPrefix(out.String(), "gostack REPL."))
	assert.True(t, strings.HasSuffix(out.String(), "gs> \n"))
}

type scriptedLines struct {
	lines []string
}

func (s *scriptedLines) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestLoop(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(plainConfig(), &out)

	require.NoError(t, s.Loop(&scriptedLines{lines: []string{"5 dup * print", `"ab" 3 * print`}}))
	assert.Equal(t, "25\nababab\n", out.String())

	out.Reset()
	require.NoError(t, s.Loop(&scriptedLines{lines: []string{"quit", "1 print"}}))
	assert.Empty(t, out.String())
}
