package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
	defaultFile      = "config.yaml"
)

type Config struct {
	AppEnv             string        `koanf:"app_env"`
	HTTPAddr           string        `koanf:"http_addr"`
	DatabaseURL        string        `koanf:"database_url"`
	JWTSecret          string        `koanf:"jwt_secret"`
	JWTTTL             time.Duration `koanf:"jwt_ttl"`
	LogLevel           string        `koanf:"log_level"`
	LogPretty          bool          `koanf:"log_pretty"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
	BcryptCost         int           `koanf:"bcrypt_cost"`
}

func defaults() *Config {
	return &Config{
		AppEnv:      "dev",
		HTTPAddr:    ":8080",
		DatabaseURL: "coderr.db",
		JWTSecret:   defaultJWTSecret,
		JWTTTL:      720 * time.Hour,
		LogLevel:    "info",
		BcryptCost:  bcrypt.DefaultCost,
	}
}

var keys = map[string]bool{
	"app_env":              true,
	"http_addr":            true,
	"database_url":         true,
	"jwt_secret":           true,
	"jwt_ttl":              true,
	"log_level":            true,
	"log_pretty":           true,
	"cors_allowed_origins": true,
	"bcrypt_cost":          true,
}

// Load reads .env (if present), then the optional YAML file, then the
// process environment. Later sources win.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = defaultFile
	}

	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(key)
			if !keys[key] || strings.TrimSpace(value) == "" {
				return "", nil
			}
			if key == "cors_allowed_origins" {
				return key, splitList(value)
			}
			return key, value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("HTTP_ADDR must not be empty")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if c.JWTTTL < 0 {
		return errors.New("JWT_TTL must be >= 0")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return errors.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.IsProd() {
		if s := strings.TrimSpace(c.JWTSecret); s == "" || s == defaultJWTSecret {
			return errors.New("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
