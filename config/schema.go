package config

// Config represents the taskboard configuration
type Config struct {
	// Chat assistant settings
	Model        string  `yaml:"model" mapstructure:"model"`
	MaxTokens    int32   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature  float32 `yaml:"temperature" mapstructure:"temperature"`
	SystemPrompt string  `yaml:"system_prompt" mapstructure:"system_prompt"`

	// REPL settings
	Prompt      string `yaml:"prompt" mapstructure:"prompt"`
	HistoryFile string `yaml:"history_file" mapstructure:"history_file"`

	// Seed file applied at startup, if set
	SeedFile string `yaml:"seed_file" mapstructure:"seed_file"`

	Debug bool `yaml:"debug" mapstructure:"debug"`
}
