package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string `mapstructure:"APP_PORT"`
	GinMode         string `mapstructure:"GIN_MODE"`
	MongoURI        string `mapstructure:"MONGO_URI"`
	MongoDB         string `mapstructure:"MONGO_DB"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes int    `mapstructure:"TOKEN_TTL_MINUTES"`
	RabbitURL       string `mapstructure:"RABBIT_URL"`
	Exchange        string `mapstructure:"RABBIT_EXCHANGE"`
	Queue           string `mapstructure:"RABBIT_QUEUE"`
	BindKey         string `mapstructure:"RABBIT_BIND_KEY"`
	Concurrency     int    `mapstructure:"RABBIT_CONCURRENCY"`
	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
	LogProd         bool   `mapstructure:"LOG_PROD"`
	DDEnabled       bool   `mapstructure:"DD_ENABLED"`
}

var defaults = map[string]any{
	"APP_PORT":           "8080",
	"GIN_MODE":           "release",
	"MONGO_URI":          "",
	"MONGO_DB":           "habits",
	"JWT_SECRET":         "",
	"TOKEN_TTL_MINUTES":  60,
	"RABBIT_URL":         "",
	"RABBIT_EXCHANGE":    "habits.events",
	"RABBIT_QUEUE":       "habits.notify",
	"RABBIT_BIND_KEY":    "#",
	"RABBIT_CONCURRENCY": 4,
	"CORS_ORIGINS":       "",
	"LOG_PROD":           false,
	"DD_ENABLED":         false,
}

// Load reads the environment (and a .env file, if present).
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, def := range defaults {
		v.SetDefault(k, def)
		if err := v.BindEnv(k); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks what the API server cannot start without.
func (c Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTLMinutes <= 0 {
		return errors.New("TOKEN_TTL_MINUTES must be positive")
	}
	return nil
}

// Origins splits CORS_ORIGINS; nil means any origin.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
