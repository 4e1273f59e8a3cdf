// Package config loads the YAML settings shared by the CLI, the REPL and the
// desktop console.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the user's home directory when no explicit
// path is given.
const DefaultFileName = ".gostack.yaml"

// Config holds every user-tunable setting.
type Config struct {
	Path string `yaml:"-"`

	Prompt  string  `yaml:"prompt"`
	Color   bool    `yaml:"color"`
	Trace   bool    `yaml:"trace"`
	Banner  bool    `yaml:"banner"`
	Desktop Desktop `yaml:"desktop"`
}

// Desktop configures the graphical console window.
type Desktop struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Prompt: "> ",
		Color:  true,
		Banner: true,
		Desktop: Desktop{
			Width:  640,
			Height: 480,
			Title:  "gostack",
		},
	}
}

// ValidationError aggregates configuration failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads path over the defaults. An empty path means the default file in
// the home directory, which may be absent.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, DefaultFileName)
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode reads YAML from r over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var issues []string
	if c.Desktop.Width <= 0 {
		issues = append(issues, fmt.Sprintf("desktop.width must be positive, got %d", c.Desktop.Width))
	}
	if c.Desktop.Height <= 0 {
		issues = append(issues, fmt.Sprintf("desktop.height must be positive, got %d", c.Desktop.Height))
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
