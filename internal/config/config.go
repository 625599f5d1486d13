package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"cmdcon/internal/console"
	"cmdcon/internal/display"
)

// Config is the only persisted config file schema.
type Config struct {
	PromptText             string `toml:"prompt_text"`
	ContinuationPromptText string `toml:"continuation_prompt_text"`
	MaxHistory             int    `toml:"max_history"`
	MaxLines               int    `toml:"max_lines"`
	TabWidth               int    `toml:"tab_width"`
	InputColor             string `toml:"input_color"`
	OutputColor            string `toml:"output_color"`
	ErrorColor             string `toml:"error_color"`
	Source                 string `toml:"-"`
}

func Default() Config {
	return Config{
		PromptText:             console.DefaultPrompt,
		ContinuationPromptText: console.DefaultContinuationPrompt,
		MaxHistory:             console.DefaultMaxHistory,
		MaxLines:               display.DefaultMaxLines,
		TabWidth:               console.LiteralTab,
		OutputColor:            "6",
		ErrorColor:             "1",
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cmdcon", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = applyEnvOverrides(cfg)
			return cfg, cfg.Validate()
		}
		return cfg, err
	}
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	cfg = applyEnvOverrides(cfg)
	return cfg, cfg.Validate()
}

// Validate rejects invalid bounds up front, before anything is constructed.
func (c Config) Validate() error {
	if c.MaxLines <= 0 {
		return fmt.Errorf("config: max_lines must be positive, got %d", c.MaxLines)
	}
	if c.MaxHistory < 0 && c.MaxHistory != console.UnlimitedHistory {
		return fmt.Errorf("config: max_history must be positive or %d for unlimited, got %d", console.UnlimitedHistory, c.MaxHistory)
	}
	if c.TabWidth < 0 {
		return fmt.Errorf("config: tab_width must not be negative, got %d", c.TabWidth)
	}
	return nil
}
