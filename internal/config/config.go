package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	ConfigPathEnv      = "PAAGA_CONFIG"
	minSecretKeyLength = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":                                     {},
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Log      LogConfig      `toml:"log"`
	Audit    AuditConfig    `toml:"audit"`
}

type ServerConfig struct {
	Port           string `toml:"port"`
	TimeZone       string `toml:"time_zone"`
	AllowedOrigins string `toml:"allowed_origins"`
	CookieSecure   bool   `toml:"cookie_secure"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type AuthConfig struct {
	SecretKey string `toml:"secret_key,omitempty"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	Path       string `toml:"path,omitempty"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

type AuditConfig struct {
	Buffer int `toml:"buffer"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:     "8080",
			TimeZone: "UTC",
		},
		Database: DatabaseConfig{
			Path: filepath.Join("data", "paaga.db"),
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Audit: AuditConfig{
			Buffer: 256,
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file named
// by PAAGA_CONFIG, and environment variables, in that order of precedence.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv(ConfigPathEnv)); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadForDatabase is Load without the server checks, for operator commands
// that only need the database path.
func LoadForDatabase() (Config, error) {
	cfg := Default()
	if path := strings.TrimSpace(os.Getenv(ConfigPathEnv)); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if value, ok := lookupEnv("PORT"); ok {
		cfg.Server.Port = value
	}
	if value, ok := lookupEnv("DB_PATH"); ok {
		cfg.Database.Path = value
	}
	if value, ok := lookupEnv("TZ"); ok {
		cfg.Server.TimeZone = value
	}
	if value, ok := lookupEnv("SECRET_KEY"); ok {
		cfg.Auth.SecretKey = value
	}
	if value, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(value)
	}
	if value, ok := lookupEnv("LOG_PATH"); ok {
		cfg.Log.Path = value
	}
	if value, ok := lookupEnv("ALLOWED_ORIGINS"); ok {
		cfg.Server.AllowedOrigins = value
	}
	if value, ok := lookupEnv("COOKIE_SECURE"); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid COOKIE_SECURE %q: %w", value, err)
		}
		cfg.Server.CookieSecure = parsed
	}
	if value, ok := lookupEnv("AUDIT_BUFFER"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid AUDIT_BUFFER %q", value)
		}
		cfg.Audit.Buffer = parsed
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func (cfg Config) Validate() error {
	if _, err := ResolvePort(cfg.Server.Port); err != nil {
		return err
	}
	if _, err := ResolveSecretKey(cfg.Auth.SecretKey); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		return errors.New("database path is required")
	}
	// Credentialed CORS cannot use a wildcard origin.
	for _, origin := range cfg.Origins() {
		if origin == "*" {
			return errors.New("ALLOWED_ORIGINS must list explicit origins, not *")
		}
	}
	return nil
}

func ResolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q: must be 1..65535", raw)
	}
	return port, nil
}

func ResolveSecretKey(raw string) ([]byte, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return nil, errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return nil, errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return nil, fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return []byte(secret), nil
}

// Location falls back to UTC for an unknown zone name.
func (cfg Config) Location() (*time.Location, bool) {
	name := strings.TrimSpace(cfg.Server.TimeZone)
	if name == "" {
		return time.UTC, true
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, false
	}
	return location, true
}

func (cfg Config) Origins() []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(cfg.Server.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
