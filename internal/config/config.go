// Package config loads service configuration from defaults, an optional
// config.yaml, and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         int           `yaml:"port" mapstructure:"port"`
	KBBackend    string        `yaml:"kb_backend" mapstructure:"kb_backend"`
	KBPath       string        `yaml:"kb_path" mapstructure:"kb_path"`
	GeminiAPIKey string        `yaml:"gemini_api_key" mapstructure:"gemini_api_key"`
	GeminiModel  string        `yaml:"gemini_model" mapstructure:"gemini_model"`
	LLMTimeout   time.Duration `yaml:"llm_timeout" mapstructure:"llm_timeout"`
	WatchKB      bool          `yaml:"watch_kb" mapstructure:"watch_kb"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:        8080,
		KBBackend:   "json",
		KBPath:      "knowledge_base.json",
		GeminiModel: "gemini-1.5-flash",
		LLMTimeout:  20 * time.Second,
		WatchKB:     true,
	}
}

// Load reads config.yaml from the working directory (if present) and
// applies MOHUR_* environment overrides. A missing Gemini key disables the
// LLM fallback only, never the whole service.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MOHUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Hosting platforms conventionally inject PORT; the Gemini key is
	// commonly set without the service prefix.
	v.BindEnv("port", "MOHUR_PORT", "PORT")
	v.BindEnv("gemini_api_key", "MOHUR_GEMINI_API_KEY", "GEMINI_API_KEY")

	v.SetDefault("port", cfg.Port)
	v.SetDefault("kb_backend", cfg.KBBackend)
	v.SetDefault("kb_path", cfg.KBPath)
	v.SetDefault("gemini_model", cfg.GeminiModel)
	v.SetDefault("llm_timeout", cfg.LLMTimeout)
	v.SetDefault("watch_kb", cfg.WatchKB)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file; defaults plus environment are fine.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.KBBackend {
	case "json", "sqlite":
	default:
		return nil, fmt.Errorf("unknown kb_backend %q (expected json or sqlite)", cfg.KBBackend)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
