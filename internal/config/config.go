package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	StoreDriver                   string `mapstructure:"STORE_DRIVER"`
	CatalogFile                   string `mapstructure:"CATALOG_FILE"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	OIDCClientID                  string `mapstructure:"OIDC_CLIENT_ID"`
	OIDCClientSecret              string `mapstructure:"OIDC_CLIENT_SECRET"`
	OIDCAuthURL                   string `mapstructure:"OIDC_AUTH_URL"`
	OIDCTokenURL                  string `mapstructure:"OIDC_TOKEN_URL"`
	OIDCUserInfoURL               string `mapstructure:"OIDC_USERINFO_URL"`
	OIDCRedirectURL               string `mapstructure:"OIDC_REDIRECT_URL"`
	JWTSecret                     string `mapstructure:"JWT_SECRET"`
	FrontendURL                   string `mapstructure:"FRONTEND_URL"`
	CORSAllowedOrigins            string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	NATSURL                       string `mapstructure:"NATS_URL"`
	NATSSubjectPrefix             string `mapstructure:"NATS_SUBJECT_PREFIX"`
	LogLevel                      string `mapstructure:"LOG_LEVEL"`
	LogFormat                     string `mapstructure:"LOG_FORMAT"`
}

// LoadConfig reads the configuration from the environment, falling back to
// the defaults below, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "3000")
	v.SetDefault("STORE_DRIVER", StoreJSON)
	v.SetDefault("CATALOG_FILE", "data/safari_trips.json")
	v.SetDefault("DATABASE_PATH", "safari.db")
	v.SetDefault("OIDC_CLIENT_ID", "safari-app")
	v.SetDefault("OIDC_AUTH_URL", "http://localhost:8080/realms/MyApp/protocol/openid-connect/auth")
	v.SetDefault("OIDC_TOKEN_URL", "http://localhost:8080/realms/MyApp/protocol/openid-connect/token")
	v.SetDefault("OIDC_USERINFO_URL", "http://localhost:8080/realms/MyApp/protocol/openid-connect/userinfo")
	v.SetDefault("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000/")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("NATS_SUBJECT_PREFIX", "safari")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	// Keys without a default are invisible to Unmarshal unless bound.
	v.BindEnv("OIDC_CLIENT_SECRET")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	v.BindEnv("NATS_URL")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimSuffix(o, "/"))
		}
	}
	return origins
}

// Validate reports every problem at once rather than stopping at the first.
func (c *Config) Validate() error {
	var errs []string

	if c.Port == "" {
		errs = append(errs, "PORT is required")
	}
	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case StoreJSON:
		if c.CatalogFile == "" {
			errs = append(errs, "CATALOG_FILE is required for the json store")
		}
	case StoreSQLite:
		if c.DatabasePath == "" {
			errs = append(errs, "DATABASE_PATH is required for the sqlite store")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORE_DRIVER must be %q or %q, got %q", StoreJSON, StoreSQLite, c.StoreDriver))
	}
	if c.DiscordBotToken != "" && c.DiscordNotificationsChannelID == "" {
		errs = append(errs, "DISCORD_NOTIFICATIONS_CHANNEL_ID is required when DISCORD_BOT_TOKEN is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
