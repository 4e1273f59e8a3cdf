//go:build !js

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gostack/pkg/config"
	"gostack/pkg/interp"
	"gostack/pkg/lang"
	"gostack/pkg/repl"
	"gostack/pkg/utils"
)

// cliEnv carries the global flags and the state they resolve to.
type cliEnv struct {
	configPath string
	trace      bool
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	env := &cliEnv{cfg: config.Default()}
	root := newRootCmd(env)
	if err := root.Execute(); err != nil {
		env.printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:   "gostack [file]",
		Short: "Run stack language programs",
		Long: `
gostack runs programs written in a small stack-based language. With a file
argument the file is executed; with no argument an interactive session starts.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return &lang.Error{Kind: lang.TooManyArgs}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return env.runREPL(cmd)
			}
			return env.runFile(cmd.OutOrStdout(), args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&env.configPath, "config", "", "YAML config file (default ~/"+config.DefaultFileName+" if present)")
	root.PersistentFlags().BoolVar(&env.trace, "trace", false, "log every evaluated statement at debug level to stderr")
	root.PersistentFlags().BoolVar(&env.noColor, "no-color", false, "print errors without color")

	root.AddCommand(
		env.runCmd(),
		env.replCmd(),
		env.tokensCmd(),
		env.astCmd(),
		env.checkCmd(),
	)
	return root
}

// setup loads the configuration and lets command-line flags override it.
func (e *cliEnv) setup(stderr io.Writer) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	if e.trace {
		cfg.Trace = true
	}
	if e.noColor {
		cfg.Color = false
	}
	e.cfg = cfg
	e.logger = e.newLogger(stderr)
	return nil
}

// newLogger builds a text logger writing to w at the configured level.
func (e *cliEnv) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if e.cfg.Trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (e *cliEnv) printError(w io.Writer, err error) {
	c := color.New(color.FgRed, color.Bold)
	if e.cfg != nil && !e.cfg.Color {
		c.DisableColor()
	}
	c.Fprintf(w, "error: %v\n", err)
}

func (e *cliEnv) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a script file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &lang.Error{Kind: lang.NoSourceFile}
			}
			return e.runFile(cmd.OutOrStdout(), args[0])
		},
	}
}

func (e *cliEnv) runFile(out io.Writer, path string) error {
	src, fullPath, err := utils.ReadSource(path)
	if err != nil {
		return err
	}
	e.logger.Debug("running", slog.String("path", fullPath))
	in := interp.New(interp.WithOutput(out), interp.WithLogger(e.logger))
	if err := in.Exec(src); err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	return nil
}

func (e *cliEnv) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runREPL(cmd)
		},
	}
}

func (e *cliEnv) runREPL(cmd *cobra.Command) error {
	newSession := func(out, logs io.Writer) *repl.Session {
		return repl.NewSession(e.cfg, out, interp.WithLogger(e.newLogger(logs)))
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return repl.RunTerminal(f, cmd.OutOrStdout(), cmd.ErrOrStderr(), newSession)
	}
	return newSession(cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(cmd.InOrStdin())
}

func (e *cliEnv) tokensCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := utils.ReadSource(args[0])
			if err != nil {
				return err
			}
			tokens, err := lang.Lex(src)
			if err != nil {
				return errors.Wrapf(err, "%s", args[0])
			}
			out := cmd.OutOrStdout()
			if raw {
				spew.Fdump(out, tokens)
				return nil
			}
			for _, tok := range tokens {
				fmt.Fprintln(out, tok)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "dump the token structs")
	return cmd
}

func (e *cliEnv) astCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the parsed statements of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := parseFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if raw {
				pretty.Fprintf(out, "%# v\n", stmts)
				return nil
			}
			_, err = fmt.Fprintln(out, lang.Format(stmts))
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "dump the statement tree with field names")
	return cmd
}

func (e *cliEnv) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <files...>",
		Short: "Lex and parse files, reporting every failure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			for _, path := range args {
				if _, err := parseFile(path); err != nil {
					result = multierror.Append(result, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
			}
			return result.ErrorOrNil()
		},
	}
}

func parseFile(path string) ([]lang.Stmt, error) {
	src, _, err := utils.ReadSource(path)
	if err != nil {
		return nil, err
	}
	tokens, err := lang.Lex(src)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	stmts, err := lang.Parse(tokens)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return stmts, nil
}
