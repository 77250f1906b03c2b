// Package config loads the YAML run configuration that drives a grading
// run: assignment identity, runner definitions, the grading rubric, and the
// result documents to reconcile. Fetching or cloning the repositories under
// test is outside this system; the config only names what the collaborators
// need.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/verdict/internal/format"
	"github.com/roach88/verdict/internal/result"
)

// Runner describes one command the grading pipeline executes to produce a
// result document.
type Runner struct {
	Title            string `yaml:"title"`
	DisplayTitle     string `yaml:"display_title"`
	Command          string `yaml:"command"`
	Visible          bool   `yaml:"visible"`
	TransferWarnings bool   `yaml:"transfer_warnings"`
	XtermJS          bool   `yaml:"xterm_js"`
	Require          string `yaml:"require"`
	Eval             string `yaml:"eval"`
}

// IsInteractive reports whether the runner needs an interactive terminal.
func (r Runner) IsInteractive() bool {
	return r.XtermJS
}

// ResultFile names a result document and the adapter to parse it with.
type ResultFile struct {
	Type string `yaml:"type"` // auto | native | legacy
	Path string `yaml:"path"`
}

// Config is the top-level run configuration.
type Config struct {
	Key       string                       `yaml:"key"`
	PsetID    int                          `yaml:"psetid"`
	Title     string                       `yaml:"title"`
	Directory string                       `yaml:"directory"`
	Runners   map[string]Runner            `yaml:"runners"`
	Grades    map[string]result.GradeEntry `yaml:"grades"`
	Expected  ResultFile                   `yaml:"expected"`
	Actual    ResultFile                   `yaml:"actual"`
}

// Load reads and validates a run configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &Config{Directory: "."}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Key == "" {
		return fmt.Errorf("key is required")
	}
	for name, r := range c.Runners {
		if r.Command == "" {
			r.Command = "/bin/true"
			c.Runners[name] = r
		}
	}
	for _, rf := range []ResultFile{c.Expected, c.Actual} {
		if rf.Type == "" || rf.Type == format.FormatAuto {
			continue
		}
		if _, err := format.ByName(rf.Type); err != nil {
			return err
		}
	}
	return nil
}
