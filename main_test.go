package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostack/pkg/lang"
)

// execute runs the command line with an isolated home directory and
// returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := newRootCmd(&cliEnv{})
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFile(t *testing.T) {
	path := writeScript(t, "add.stk", "2 3 + print")

	out, err := execute(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = execute(t, "", "run", path)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestRunFileErrors(t *testing.T) {
	_, err := execute(t, "", "a.stk", "b.stk")
	assert.True(t, errors.Is(err, lang.TooManyArgs), "got %v", err)

	_, err = execute(t, "", "run")
	assert.True(t, errors.Is(err, lang.NoSourceFile), "got %v", err)

	_, err = execute(t, "", filepath.Join(t.TempDir(), "missing.stk"))
	assert.True(t, errors.Is(err, lang.SourceFileNotFound), "got %v", err)

	path := writeScript(t, "bad.stk", "1 print missing")
	out, err := execute(t, "", path)
	assert.Equal(t, "1\n", out)
	assert.True(t, errors.Is(err, lang.IdentifierNotFound), "got %v", err)
	assert.Equal(t, path+": identifier 'missing' does not exist", err.Error())
}

func TestREPL(t *testing.T) {
	config := writeScript(t, "cfg.yaml", "banner: false\ncolor: false\nprompt: \"$ \"\n")

	out, err := execute(t, "1 bind x\nx x + print\n", "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "$ $ 2\n$ \n", out)

	out, err = execute(t, "exit\n", "repl", "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "$ ", out)
}

func TestTokens(t *testing.T) {
	path := writeScript(t, "p.stk", "1 print")
	out, err := execute(t, "", "tokens", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NUMBER"))
	assert.True(t, strings.HasPrefix(lines[1], "PRINT"))
	assert.True(t, strings.HasPrefix(lines[2], "EOF"))

	out, err = execute(t, "", "tokens", "--raw", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Lexeme: (string) (len=5) \"print\"")
}

func TestAST(t *testing.T) {
	path := writeScript(t, "p.stk", "proc p do 1 end\nif true do call p end print")
	out, err := execute(t, "", "ast", path)
	require.NoError(t, err)
	assert.Equal(t, "proc p do 1 end if true do call p end print\n", out)

	// String contents are printed as written.
	verbatim := writeScript(t, "s.stk", "\"a\\b\nc\" print")
	out, err = execute(t, "", "ast", verbatim)
	require.NoError(t, err)
	assert.Equal(t, "\"a\\b\nc\" print\n", out)

	out, err = execute(t, "", "ast", "--raw", path)
	require.NoError(t, err)
	assert.Contains(t, out, "&lang.ProcStmt{")
}

func TestCheck(t *testing.T) {
	good := writeScript(t, "good.stk", "1 2 + print")
	unterminated := writeScript(t, "open.stk", `"open`)
	unbalanced := writeScript(t, "block.stk", "while true do")

	out, err := execute(t, "", "check", good, unterminated, unbalanced)
	assert.Equal(t, "ok   "+good+"\n", out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lang.StringNotTerminated))
	assert.True(t, errors.Is(err, lang.UnexpectedToken))
	assert.Contains(t, err.Error(), "2 errors occurred")

	_, err = execute(t, "", "check", good)
	assert.NoError(t, err)
}

func TestTraceLogsToStderr(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeScript(t, "p.stk", "1 bind x")

	var out, errOut bytes.Buffer
	root := newRootCmd(&cliEnv{})
	root.SetArgs([]string{"--trace", path})
	root.SetOut(&out)
	root.SetErr(&errOut)
	require.NoError(t, root.Execute())
	assert.Contains(t, errOut.String(), "level=DEBUG msg=bind name=x value=1")
}

func TestREPLTraceStaysOffStdout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := newRootCmd(&cliEnv{})
	root.SetArgs([]string{"repl", "--trace", "--no-color"})
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader("2 bind y\n"))
	require.NoError(t, root.Execute())

	assert.NotContains(t, out.String(), "level=DEBUG")
	assert.Contains(t, errOut.String(), "msg=bind name=y value=2")
}
