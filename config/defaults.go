package config

import (
	"os"
	"path/filepath"

	"taskboard/llm"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	chat := llm.DefaultConfig()

	cfg := &Config{
		Model:       chat.Model,
		MaxTokens:   chat.MaxTokens,
		Temperature: chat.Temperature,
		Prompt:      "> ",
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".taskboard", "history")
	}

	return cfg
}

// LLMConfig converts the chat settings into an llm.Config
func (c *Config) LLMConfig() *llm.Config {
	return &llm.Config{
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		System:      c.SystemPrompt,
	}
}
