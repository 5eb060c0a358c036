package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Engine     EngineConfig     `toml:"engine"`
	Translator TranslatorConfig `toml:"translator"`
	Session    SessionConfig    `toml:"session"`
	STT        STTConfig        `toml:"stt"`
	UI         UIConfig         `toml:"ui"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// EngineConfig holds execution engine settings
type EngineConfig struct {
	PreviewRows  int `toml:"preview_rows"`
	HistoryLimit int `toml:"history_limit"` // 0 = unbounded
}

// TranslatorConfig holds LLM translation settings
type TranslatorConfig struct {
	DefaultProvider    string          `toml:"default_provider"`
	DefaultModel       string          `toml:"default_model"`
	DefaultTemperature float32         `toml:"default_temperature"`
	DefaultMaxTokens   int             `toml:"default_max_tokens"`
	Timeout            Duration        `toml:"timeout"`
	CacheEnabled       bool            `toml:"cache_enabled"`
	CacheTTL           Duration        `toml:"cache_ttl"`
	Providers          ProvidersConfig `toml:"providers"`
}

// ProvidersConfig holds LLM provider configurations
type ProvidersConfig struct {
	Ollama ProviderConfig `toml:"ollama"`
	OpenAI ProviderConfig `toml:"openai"`
	Groq   ProviderConfig `toml:"groq"`
}

// ProviderConfig holds a single provider's configuration
type ProviderConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// SessionConfig holds session persistence settings
type SessionConfig struct {
	Enabled      bool   `toml:"enabled"`
	DatabasePath string `toml:"database_path"`
}

// STTConfig holds speech-to-text settings
type STTConfig struct {
	Enabled   bool     `toml:"enabled"`
	ServerURL string   `toml:"server_url"`
	StreamURL string   `toml:"stream_url"`
	Language  string   `toml:"language"`
	Timeout   Duration `toml:"timeout"`
}

// UIConfig holds terminal client settings
type UIConfig struct {
	ShowReasoning bool `toml:"show_reasoning"`
	TableRows     int  `toml:"table_rows"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in sensitive fields
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from the MTW_CONFIG environment variable
// or the default locations, falling back to pure defaults when no file exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("MTW_CONFIG")
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			filepath.Join(os.Getenv("HOME"), ".config/meintabellenwerk/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "meinTABELLENWERK"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Engine
	if c.Engine.PreviewRows == 0 {
		c.Engine.PreviewRows = 5
	}

	// Translator
	if c.Translator.DefaultProvider == "" {
		c.Translator.DefaultProvider = "ollama"
	}
	if c.Translator.DefaultModel == "" {
		c.Translator.DefaultModel = "qwen2.5:7b"
	}
	if c.Translator.DefaultTemperature == 0 {
		c.Translator.DefaultTemperature = 0.1
	}
	if c.Translator.DefaultMaxTokens == 0 {
		c.Translator.DefaultMaxTokens = 1000
	}
	if c.Translator.Timeout.Duration == 0 {
		c.Translator.Timeout.Duration = 120 * time.Second
	}
	if c.Translator.CacheTTL.Duration == 0 {
		c.Translator.CacheTTL.Duration = 5 * time.Minute
	}
	if c.Translator.Providers.Ollama.BaseURL == "" {
		c.Translator.Providers.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Translator.Providers.OpenAI.BaseURL == "" {
		c.Translator.Providers.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.Translator.Providers.Groq.BaseURL == "" {
		c.Translator.Providers.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}

	// Session
	if c.Session.DatabasePath == "" {
		c.Session.DatabasePath = filepath.Join(c.General.DataDir, "sessions.db")
	}

	// STT
	if c.STT.ServerURL == "" {
		c.STT.ServerURL = "http://localhost:8080"
	}
	if c.STT.StreamURL == "" {
		c.STT.StreamURL = "ws://localhost:8080/stream"
	}
	if c.STT.Language == "" {
		c.STT.Language = "de"
	}
	if c.STT.Timeout.Duration == 0 {
		c.STT.Timeout.Duration = 60 * time.Second
	}

	// UI
	if c.UI.TableRows == 0 {
		c.UI.TableRows = 15
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Translator.Providers.OpenAI.APIKey = os.ExpandEnv(c.Translator.Providers.OpenAI.APIKey)
	c.Translator.Providers.Groq.APIKey = os.ExpandEnv(c.Translator.Providers.Groq.APIKey)
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Session.DatabasePath = os.ExpandEnv(c.Session.DatabasePath)
}
