package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/rpn"
)

// config is the configuration file format.
type config struct {
	Mode    string            `yaml:"mode"`
	Prompt  string            `yaml:"prompt"`
	Places  *int              `yaml:"places"`
	Prec    uint              `yaml:"prec"`
	History int               `yaml:"history"`
	State   string            `yaml:"state"`
	Vars    map[string]string `yaml:"variables"`
}

// loadConfig reads a configuration file. An empty name gives the defaults.
func loadConfig(name string) (*config, error) {
	cfg := config{Mode: "algebraic", Prompt: "> "}
	if name == "" {
		return &cfg, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return &cfg, nil
}

// options converts the configuration to engine options.
func (cfg *config) options() ([]rpn.Option, error) {
	var opts []rpn.Option
	if cfg.Places != nil {
		opts = append(opts, rpn.Places(int32(*cfg.Places)))
	}
	if cfg.Prec != 0 {
		opts = append(opts, rpn.Prec(cfg.Prec))
	}
	if cfg.History != 0 {
		opts = append(opts, rpn.HistoryDepth(cfg.History))
	}
	for name, lit := range cfg.Vars {
		if !rpn.IsIdent(name) {
			return nil, fmt.Errorf("variable %q: %w", name, &rpn.IdentError{Name: name})
		}
		opts = append(opts, rpn.SetVar(name, rpn.ParseValue(lit)))
	}
	return opts, nil
}

// loadState restores a session. A missing file is not an error.
func loadState(e *rpn.Engine, name string) error {
	b, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var s rpn.State
	if err := yaml.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return e.Restore(s)
}

func saveState(e *rpn.Engine, name string) error {
	b, err := yaml.Marshal(e.State())
	if err != nil {
		return err
	}
	return os.WriteFile(name, b, 0o644)
}
