package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PTREGIME_SERVER_ADDR
const EnvPrefix = "PTREGIME"

// Settings configure the binaries (server, CLI, TUI)
type Settings struct {
	Server ServerSettings `mapstructure:"server"`
	Log    LogSettings    `mapstructure:"log"`
	Store  StoreSettings  `mapstructure:"store"`
	Rates  RateSettings   `mapstructure:"rates"`
}

type ServerSettings struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// StoreSettings select the simulation store. Backend is "memory" or "redis".
type StoreSettings struct {
	Backend   string        `mapstructure:"backend"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
	Password  string        `mapstructure:"redis_password"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// RateSettings point at optional rate table files
type RateSettings struct {
	Dir        string `mapstructure:"dir"`
	File       string `mapstructure:"file"`
	FiscalYear int    `mapstructure:"fiscal_year"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.key_prefix", "ptregime")
	v.SetDefault("store.ttl", time.Duration(0))
	v.SetDefault("rates.dir", "")
	v.SetDefault("rates.file", "")
	v.SetDefault("rates.fiscal_year", 2025)
}

// LoadSettings reads settings from, in increasing precedence: defaults, the
// config file (explicit path or ptregime.yaml in ./configs or .), a .env file
// and PTREGIME_* environment variables.
func LoadSettings(path string) (*Settings, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("ptregime")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

// Validate checks enumerations and required fields
func (s *Settings) Validate() error {
	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", s.Log.Format)
	}
	switch s.Store.Backend {
	case "memory":
	case "redis":
		if s.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("store.backend must be memory or redis, got %q", s.Store.Backend)
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if s.Store.TTL < 0 {
		return fmt.Errorf("store.ttl cannot be negative")
	}
	return nil
}

// loadEnvFile loads .env from the working directory if present. Variables
// already set in the environment win.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
