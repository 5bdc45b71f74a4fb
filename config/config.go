/* config.go
 * Contains the bot's configuration. Values are layered: defaults, then an optional YAML file, then environment
 * variables (which a .env file may populate)
 * Authors: Zachary Bower
 */

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"sportsstats-bot/api/external"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Supported chat platforms
const (
	PlatformDiscord  = "discord"
	PlatformTelegram = "telegram"
)

// Config holds all bot configuration
type Config struct {
	Platform string         `yaml:"platform" env:"PLATFORM"`
	Discord  DiscordConfig  `yaml:"discord"`
	Telegram TelegramConfig `yaml:"telegram"`
	Football FootballConfig `yaml:"football"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Web      WebConfig      `yaml:"web"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DiscordConfig configures the Discord runtime
type DiscordConfig struct {
	ProdToken string `yaml:"prod_token" env:"DISCORD_PROD_TOKEN"`
	BetaToken string `yaml:"beta_token" env:"DISCORD_BETA_TOKEN"`
	Prefix    string `yaml:"prefix" env:"COMMAND_PREFIX"`
}

// TelegramConfig configures the Telegram runtime
type TelegramConfig struct {
	Token string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
}

// FootballConfig configures the API-Football client
type FootballConfig struct {
	BaseURL    string `yaml:"base_url" env:"FOOTBALL_API_URL"`
	APIKey     string `yaml:"api_key" env:"FOOTBALL_API_TOKEN"`
	LeagueID   int    `yaml:"league_id" env:"FOOTBALL_LEAGUE_ID"`
	LeagueName string `yaml:"league_name" env:"FOOTBALL_LEAGUE_NAME"`
	// Season 0 means derive the season from the current date
	Season  int           `yaml:"season" env:"FOOTBALL_SEASON"`
	Timeout time.Duration `yaml:"timeout" env:"FOOTBALL_API_TIMEOUT"`
}

// MongoConfig configures the favourite team store
type MongoConfig struct {
	URI      string `yaml:"uri" env:"MONGO_PROD_URI"`
	Database string `yaml:"database" env:"MONGO_DATABASE"`
}

// WebConfig configures the HTTP server. An empty Addr disables it
type WebConfig struct {
	Addr string `yaml:"addr" env:"WEB_ADDR"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level       string `yaml:"level" env:"LOG_LEVEL"`
	Development bool   `yaml:"development" env:"LOG_DEVELOPMENT"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Platform: PlatformDiscord,
		Discord:  DiscordConfig{Prefix: "$"},
		Football: FootballConfig{
			BaseURL:    external.DefaultBaseURL,
			LeagueID:   external.DefaultLeagueID,
			LeagueName: "English Premier League",
			Timeout:    external.DefaultTimeout,
		},
		Mongo:   MongoConfig{Database: "sportsstats"},
		Web:     WebConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration
// Preconditions: Receives the path of an optional YAML file. An empty path skips the file
// Postconditions: Returns defaults overridden by the file, overridden by the environment, or an error if the file
// or an environment variable could not be parsed
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Platform = strings.ToLower(strings.TrimSpace(cfg.Platform))
	return cfg, nil
}

// Validate checks that everything the chosen platform needs is present
// Preconditions: useBeta selects the Discord beta token
// Postconditions: Returns an error naming the first missing or invalid value
func (c *Config) Validate(useBeta bool) error {
	switch c.Platform {
	case PlatformDiscord:
		if c.DiscordToken(useBeta) == "" {
			if useBeta {
				return fmt.Errorf("DISCORD_BETA_TOKEN is required for the discord platform in test mode")
			}
			return fmt.Errorf("DISCORD_PROD_TOKEN is required for the discord platform")
		}
	case PlatformTelegram:
		if c.Telegram.Token == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is required for the telegram platform")
		}
	default:
		return fmt.Errorf("unknown platform %q, expected %s or %s", c.Platform, PlatformDiscord, PlatformTelegram)
	}
	return c.ValidateServices()
}

// ValidateServices checks the football API and favourite store settings, which every command needs
func (c *Config) ValidateServices() error {
	if c.Football.APIKey == "" {
		return fmt.Errorf("FOOTBALL_API_TOKEN is required")
	}
	if c.Football.LeagueID <= 0 {
		return fmt.Errorf("football league id must be positive, got %d", c.Football.LeagueID)
	}
	if c.Football.Timeout <= 0 {
		return fmt.Errorf("football api timeout must be positive, got %s", c.Football.Timeout)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_PROD_URI is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}
	return nil
}

// DiscordToken returns the production or beta Discord token
func (c *Config) DiscordToken(useBeta bool) string {
	if useBeta {
		return c.Discord.BetaToken
	}
	return c.Discord.ProdToken
}

// BotToken returns the token for the configured platform
func (c *Config) BotToken(useBeta bool) string {
	if c.Platform == PlatformTelegram {
		return c.Telegram.Token
	}
	return c.DiscordToken(useBeta)
}
