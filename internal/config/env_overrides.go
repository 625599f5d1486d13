package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnvOverrides applies CMDCON_* environment overrides on top of the
// loaded file. Prompt and color values are taken verbatim (prompts carry
// meaningful trailing spaces); numeric values that fail to parse are ignored.
func applyEnvOverrides(cfg Config) Config {
	if env, ok := os.LookupEnv("CMDCON_PROMPT_TEXT"); ok && env != "" {
		cfg.PromptText = env
	}
	if env, ok := os.LookupEnv("CMDCON_CONTINUATION_PROMPT_TEXT"); ok && env != "" {
		cfg.ContinuationPromptText = env
	}
	if env, ok := os.LookupEnv("CMDCON_INPUT_COLOR"); ok && env != "" {
		cfg.InputColor = env
	}
	if env, ok := os.LookupEnv("CMDCON_OUTPUT_COLOR"); ok && env != "" {
		cfg.OutputColor = env
	}
	if env, ok := os.LookupEnv("CMDCON_ERROR_COLOR"); ok && env != "" {
		cfg.ErrorColor = env
	}
	cfg.MaxHistory = envInt("CMDCON_MAX_HISTORY", cfg.MaxHistory)
	cfg.MaxLines = envInt("CMDCON_MAX_LINES", cfg.MaxLines)
	cfg.TabWidth = envInt("CMDCON_TAB_WIDTH", cfg.TabWidth)
	return cfg
}

func envInt(key string, fallback int) int {
	env := strings.TrimSpace(os.Getenv(key))
	if env == "" {
		return fallback
	}
	n, err := strconv.Atoi(env)
	if err != nil {
		return fallback
	}
	return n
}
