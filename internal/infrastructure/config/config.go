package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	Auth       AuthConfig       `mapstructure:"auth"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Prompts    PromptConfig     `mapstructure:"prompts"`
	Automation AutomationConfig `mapstructure:"automation"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // local, production
}

// DatabaseConfig selects and configures the record store.
type DatabaseConfig struct {
	Type string `mapstructure:"type"` // sqlite, postgres, memory
	DSN  string `mapstructure:"dsn"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, console
}

// AuthConfig configures the optional bearer-token middleware. When disabled,
// the caller identity comes solely from the request payload.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
}

// LLMConfig configures the generation service clients.
type LLMConfig struct {
	Model         string           `mapstructure:"model"`
	MaxTokens     int              `mapstructure:"max_tokens"`
	Temperature   float64          `mapstructure:"temperature"`
	ContextWindow int              `mapstructure:"context_window"` // recent messages sent upstream
	Providers     []ProviderConfig `mapstructure:"providers"`
}

// ProviderConfig configures one generation-service endpoint.
type ProviderConfig struct {
	Name     string   `mapstructure:"name"`
	Type     string   `mapstructure:"type"` // "openai" (default)
	BaseURL  string   `mapstructure:"base_url"`
	APIKey   string   `mapstructure:"api_key"`
	Models   []string `mapstructure:"models"`
	Priority int      `mapstructure:"priority"` // lower = tried first
}

// PromptConfig configures persona-template overrides.
type PromptConfig struct {
	Path  string `mapstructure:"path"`  // YAML template file (optional)
	Watch bool   `mapstructure:"watch"` // hot-reload on file change
}

// AutomationConfig configures the due-task sweep.
type AutomationConfig struct {
	SweepEnabled  bool          `mapstructure:"sweep_enabled"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Load reads configuration in layers: defaults, then a global
// ~/.agentdna/config.yaml, then a project-local config.yaml, then
// AGENTDNA_* environment variables (lowest to highest priority).
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Global layer: ~/.agentdna/config.yaml (API keys, providers)
	globalDir := filepath.Join(os.Getenv("HOME"), ".agentdna")
	v.AddConfigPath(globalDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read global config: %w", err)
		}
	}

	// Local overlay: ./config/config.yaml or ./config.yaml
	for _, localDir := range []string{"./config", "."} {
		localPath := filepath.Join(localDir, "config.yaml")
		if _, err := os.Stat(localPath); err == nil {
			v2 := viper.New()
			v2.SetConfigFile(localPath)
			if err := v2.ReadInConfig(); err == nil {
				_ = v.MergeConfigMap(v2.AllSettings())
			}
			break
		}
	}

	// Environment override
	v.SetEnvPrefix("AGENTDNA")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8780)
	v.SetDefault("server.mode", "local")

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "agentdna.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("auth.enabled", false)

	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_tokens", 500)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.context_window", 10)

	v.SetDefault("prompts.watch", true)

	v.SetDefault("automation.sweep_enabled", true)
	v.SetDefault("automation.sweep_interval", "1m")
}
