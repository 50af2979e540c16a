// Package config loads application configuration.
// Values come from a TOML file, then from .env and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// MainConfig holds process level settings.
type MainConfig struct {
	AppName        string `toml:"appName"`        // used in logs
	Mode           string `toml:"mode"`           // "dev" or "release"
	Host           string `toml:"host"`           // listen address, e.g. "0.0.0.0"
	Port           int    `toml:"port"`           // listen port
	RequestTimeout int    `toml:"requestTimeout"` // per request deadline (seconds)
}

// DatabaseConfig selects the gorm driver and its connection settings.
type DatabaseConfig struct {
	Driver          string `toml:"driver"`          // "postgres" or "mysql"
	DSN             string `toml:"dsn"`             // full DSN; when set, the fields below are ignored
	Host            string `toml:"host"`            // database host
	Port            int    `toml:"port"`            // database port
	User            string `toml:"user"`            // database user
	Password        string `toml:"password"`        // database password
	DatabaseName    string `toml:"databaseName"`    // database name
	SSLMode         string `toml:"sslMode"`         // postgres only
	MaxOpenConns    int    `toml:"maxOpenConns"`    // pool size
	MaxIdleConns    int    `toml:"maxIdleConns"`    // idle connections kept
	ConnMaxLifetime int    `toml:"connMaxLifetime"` // minutes
	AutoMigrate     bool   `toml:"autoMigrate"`     // run AutoMigrate on start
}

// LogConfig controls zap output and lumberjack rotation.
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // directory for log files
	FileName   string `toml:"fileName"`   // log file path
	MaxSize    int    `toml:"maxSize"`    // MB per file
	MaxBackups int    `toml:"maxBackups"` // rotated files kept
	MaxAge     int    `toml:"maxAge"`     // days kept
	Level      string `toml:"level"`      // debug, info, warn, error
}

// JWTConfig holds access token settings.
type JWTConfig struct {
	Secret            string `toml:"secret"`            // HS256 signing secret
	AccessTokenExpiry int    `toml:"accessTokenExpiry"` // minutes
}

// CorsConfig lists allowed browser origins.
type CorsConfig struct {
	AllowOrigins []string `toml:"allowOrigins"`
}

// SecurityConfig controls the secure headers middleware.
type SecurityConfig struct {
	SSLRedirect bool   `toml:"sslRedirect"` // redirect plain HTTP to HTTPS
	SSLHost     string `toml:"sslHost"`     // host used for the redirect
}

// KafkaConfig configures the spam report event publisher.
type KafkaConfig struct {
	Mode      string `toml:"mode"`      // "none" or "kafka"
	HostPort  string `toml:"hostPort"`  // broker address, e.g. "localhost:9092"
	SpamTopic string `toml:"spamTopic"` // topic for spam.reported events
	Partition int    `toml:"partition"` // partitions when the topic is created
	Timeout   int    `toml:"timeout"`   // write timeout (seconds)
}

// Config aggregates all sections.
type Config struct {
	MainConfig     `toml:"mainConfig"`
	DatabaseConfig `toml:"databaseConfig"`
	LogConfig      `toml:"logConfig"`
	JWTConfig      `toml:"jwtConfig"`
	CorsConfig     `toml:"corsConfig"`
	SecurityConfig `toml:"securityConfig"`
	KafkaConfig    `toml:"kafkaConfig"`
}

var (
	config     *Config
	configErr  error
	configOnce sync.Once
)

// ErrConfigNotFound means no file exists in the search paths. LoadConfig still
// returns defaults with environment overrides alongside it.
var ErrConfigNotFound = errors.New("could not find configuration file in any of the search paths")

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName:        "caller_id_server",
			Mode:           "dev",
			Host:           "0.0.0.0",
			Port:           3000,
			RequestTimeout: 10,
		},
		DatabaseConfig: DatabaseConfig{
			Driver:          "postgres",
			Host:            "127.0.0.1",
			Port:            5432,
			User:            "postgres",
			DatabaseName:    "caller_id",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30,
			AutoMigrate:     true,
		},
		LogConfig: LogConfig{
			LogPath: "logs",
			Level:   "info",
		},
		JWTConfig: JWTConfig{
			AccessTokenExpiry: 60,
		},
		CorsConfig: CorsConfig{
			AllowOrigins: []string{"http://localhost:3000"},
		},
		KafkaConfig: KafkaConfig{
			Mode:      "none",
			HostPort:  "localhost:9092",
			SpamTopic: "spam_reports",
			Partition: 1,
			Timeout:   5,
		},
	}
}

// LoadConfig reads the first config file found, then applies .env and environment overrides.
func LoadConfig() (*Config, error) {
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}
	if p := os.Getenv("CALLER_ID_CONFIG"); p != "" {
		paths = append([]string{p}, paths...)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}

	conf := Default()
	_ = godotenv.Load() // .env is optional
	if err := applyEnv(conf); err != nil {
		return nil, err
	}
	return conf, ErrConfigNotFound
}

// LoadFile decodes path on top of the defaults and applies environment overrides.
func LoadFile(path string) (*Config, error) {
	conf := Default()
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	_ = godotenv.Load()
	if err := applyEnv(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// GetConfig returns the process-wide configuration, loading it on first use.
// Only a missing file falls back to defaults plus environment. A file that
// fails to decode or an invalid override is returned as an error, and the
// same error is returned on every later call.
func GetConfig() (*Config, error) {
	configOnce.Do(func() {
		config, configErr = resolve(LoadConfig())
	})
	return config, configErr
}

// resolve turns LoadConfig's result into the configuration to run with.
func resolve(conf *Config, err error) (*Config, error) {
	switch {
	case err == nil:
		return conf, nil
	case errors.Is(err, ErrConfigNotFound) && conf != nil:
		fmt.Fprintf(os.Stderr, "load config: %v; using defaults and environment\n", err)
		return conf, nil
	default:
		return nil, fmt.Errorf("load config: %w", err)
	}
}

// applyEnv overrides file values with environment variables.
func applyEnv(conf *Config) error {
	if v := os.Getenv("APP_MODE"); v != "" {
		conf.MainConfig.Mode = v
	}
	if v := os.Getenv("HOST"); v != "" {
		conf.MainConfig.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		conf.MainConfig.Port = port
	}
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		conf.JWTConfig.Secret = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		conf.CorsConfig.AllowOrigins = splitList(v)
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		conf.DatabaseConfig.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		conf.DatabaseConfig.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		conf.LogConfig.Level = v
	}
	if v := os.Getenv("KAFKA_MODE"); v != "" {
		conf.KafkaConfig.Mode = v
	}
	if v := os.Getenv("KAFKA_HOST_PORT"); v != "" {
		conf.KafkaConfig.HostPort = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
