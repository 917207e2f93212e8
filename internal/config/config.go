package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix is the prefix of environment variables overriding the file.
// LULU_API_KEY sets api.key, LULU_WEBHOOK_SECRET sets webhook.secret.
const EnvPrefix = "LULU_"

// Config represents the CLI configuration
type Config struct {
	API struct {
		Key     string        `koanf:"key"`
		Secret  string        `koanf:"secret"`
		Sandbox bool          `koanf:"sandbox"`
		BaseURL string        `koanf:"baseurl"`
		Timeout time.Duration `koanf:"timeout"`
		// Rate is the maximum number of requests per second, 0 disables limiting.
		Rate  float64 `koanf:"rate"`
		Burst int     `koanf:"burst"`
	} `koanf:"api"`

	Log struct {
		Level  string `koanf:"level"`
		Pretty bool   `koanf:"pretty"`
	} `koanf:"log"`

	Webhook struct {
		Addr      string `koanf:"addr"`
		Path      string `koanf:"path"`
		Secret    string `koanf:"secret"`
		OldSecret string `koanf:"oldsecret"`
	} `koanf:"webhook"`
}

var defaults = map[string]interface{}{
	"api.sandbox":  false,
	"api.timeout":  "30s",
	"api.rate":     0,
	"api.burst":    5,
	"log.level":    "info",
	"log.pretty":   true,
	"webhook.addr": ":8080",
	"webhook.path": "/webhooks/lulu",
}

// DefaultPaths are tried in order when no config file is given.
var DefaultPaths = []string{"./lulu.toml", "$HOME/.lulu.toml"}

// LoadConfig loads defaults, then the TOML file, then LULU_ environment variables.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, path := range DefaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("error loading config %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig writes a sample configuration file.
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# Lulu Print API configuration

[api]
key = "your-client-key"
secret = "your-client-secret"
sandbox = true
timeout = "30s"

[log]
level = "info"

[webhook]
addr = ":8080"
path = "/webhooks/lulu"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0600)
}

// Validate checks the settings needed to talk to the API.
func Validate(config *Config) error {
	if config.API.Key == "" {
		return fmt.Errorf("api key is required")
	}
	if config.API.Secret == "" {
		return fmt.Errorf("api secret is required")
	}
	if config.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	if config.API.Rate < 0 {
		return fmt.Errorf("api rate must not be negative")
	}
	if config.API.Rate > 0 && config.API.Burst < 1 {
		return fmt.Errorf("api burst must be at least 1 when rate limiting")
	}
	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.Log.Level, err)
	}
	return nil
}

// LoadEnv loads the first .env file found among paths into the process
// environment and returns its path. Variables already set are kept. It
// returns an empty path when none of the files exist.
func LoadEnv(paths ...string) (string, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("error loading %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

// WebhookSecret returns the secret used to verify webhook deliveries,
// which defaults to the API secret.
func (c *Config) WebhookSecret() string {
	if c.Webhook.Secret != "" {
		return c.Webhook.Secret
	}
	return c.API.Secret
}
