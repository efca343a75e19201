package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environments recognised by APP_ENV.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

type Config struct {
	Env    string
	Port   string
	DB     DBConfig
	Auth   AuthConfig
	Policy PolicyConfig
	MQ     MQConfig
	Log    LogConfig
}

type DBConfig struct {
	Path     string
	TestPath string
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type PolicyConfig struct {
	// LikeBypass lets non-owners raise likes by exactly one.
	LikeBypass bool
}

type MQConfig struct {
	URL      string
	Exchange string
}

type LogConfig struct {
	Level  string
	Format string
}

// DSN picks the database for the current environment.
func (c Config) DSN() string {
	if c.Env == EnvTest || c.Env == EnvDevelopment {
		return c.DB.TestPath
	}
	return c.DB.Path
}

var bindings = map[string]string{
	"env":                "APP_ENV",
	"port":               "PORT",
	"db.path":            "DB_PATH",
	"db.test_path":       "TEST_DB_PATH",
	"auth.secret":        "SECRET",
	"auth.token_ttl":     "TOKEN_TTL",
	"policy.like_bypass": "LIKE_BYPASS",
	"mq.url":             "MQ_URL",
	"mq.exchange":        "MQ_EXCHANGE",
	"log.level":          "LOG_LEVEL",
	"log.format":         "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvProduction)
	v.SetDefault("port", "3003")
	v.SetDefault("db.path", "bloglist.db")
	v.SetDefault("db.test_path", "bloglist_test.db")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("policy.like_bypass", true)
	v.SetDefault("mq.exchange", "bloglist.events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads <dir>/config.yml (optional), then .env (optional), then the
// environment. Later sources win.
func Load(dir string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir) // configs/config.yml
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	cfg := Config{
		Env:  strings.ToLower(strings.TrimSpace(v.GetString("env"))),
		Port: v.GetString("port"),
		DB: DBConfig{
			Path:     v.GetString("db.path"),
			TestPath: v.GetString("db.test_path"),
		},
		Auth: AuthConfig{
			Secret:   v.GetString("auth.secret"),
			TokenTTL: v.GetDuration("auth.token_ttl"),
		},
		Policy: PolicyConfig{LikeBypass: v.GetBool("policy.like_bypass")},
		MQ: MQConfig{
			URL:      v.GetString("mq.url"),
			Exchange: v.GetString("mq.exchange"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret (SECRET) is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	switch c.Env {
	case EnvProduction, EnvDevelopment, EnvTest:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	return nil
}
