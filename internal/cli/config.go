package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string        `yaml:"server" env:"TTT_SERVER" env-default:"http://localhost:3000"`
	Timeout   time.Duration `yaml:"timeout" env:"TTT_TIMEOUT" env-default:"30s"`
	Output    string        `yaml:"output" env:"TTT_OUTPUT" env-default:"text"`
	Verbose   bool          `yaml:"verbose" env:"TTT_VERBOSE"`
}

// ConfigFileEnv names the environment variable holding the config file path
const ConfigFileEnv = "TTT_CONFIG"

// LoadConfig reads configuration from the YAML file at path, if any, then
// the environment. Environment values win over the file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputHTML:
	default:
		return fmt.Errorf("invalid output format %q (want text, json or html)", c.Output)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
