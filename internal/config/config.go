package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "SCARTIX_CONFIG"

var ErrMissingTokenKey = errors.New("TOKEN_KEY environment variable is not set")

// Config holds settings shared by the server, the CLI and the admin bot.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Telegram TelegramConfig `yaml:"telegram"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	CertFile  string `yaml:"certFile"`
	KeyFile   string `yaml:"keyFile"`
	StaticDir string `yaml:"staticDir"`
	DocsDir   string `yaml:"docsDir"`
}

// TLS reports whether both certificate and key are configured.
func (s ServerConfig) TLS() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	TokenKey string `yaml:"tokenKey"`
	// requests per second per client IP on /api
	RateLimit float64 `yaml:"rateLimit"`
	RateBurst int     `yaml:"rateBurst"`
	// SecureCookie marks the session cookie HTTPS-only. Only SECURE_COOKIE can turn it off.
	SecureCookie bool `yaml:"-"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"botToken"`
	AdminChatID int64  `yaml:"adminChatId"`
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.AdminChatID != 0
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads .env (if present), an optional YAML file named by SCARTIX_CONFIG
// and then environment overrides.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("config: cannot load .env")
	}

	cfg := Default()
	if path := os.Getenv(configPathEnv); path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config: falling back to defaults")
		} else {
			cfg = merge(cfg, fileCfg)
		}
	}
	cfg.applyEnv()
	return cfg
}

// Validate checks the settings the HTTP server cannot run without.
func (c Config) Validate() error {
	if c.Auth.TokenKey == "" {
		return ErrMissingTokenKey
	}
	if c.Auth.RateLimit <= 0 || c.Auth.RateBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v/%d", c.Auth.RateLimit, c.Auth.RateBurst)
	}
	return nil
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":8080",
			StaticDir: "./static",
			DocsDir:   "./docs",
		},
		Auth: AuthConfig{RateLimit: 5, RateBurst: 10, SecureCookie: true},
		Log:  LogConfig{Level: "info", Format: "json"},
	}
}

func readFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func merge(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.CertFile != "" {
		base.Server.CertFile = override.Server.CertFile
	}
	if override.Server.KeyFile != "" {
		base.Server.KeyFile = override.Server.KeyFile
	}
	if override.Server.StaticDir != "" {
		base.Server.StaticDir = override.Server.StaticDir
	}
	if override.Server.DocsDir != "" {
		base.Server.DocsDir = override.Server.DocsDir
	}
	if override.Database.URL != "" {
		base.Database.URL = override.Database.URL
	}
	if override.Auth.TokenKey != "" {
		base.Auth.TokenKey = override.Auth.TokenKey
	}
	if override.Auth.RateLimit > 0 {
		base.Auth.RateLimit = override.Auth.RateLimit
	}
	if override.Auth.RateBurst > 0 {
		base.Auth.RateBurst = override.Auth.RateBurst
	}
	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.AdminChatID != 0 {
		base.Telegram.AdminChatID = override.Telegram.AdminChatID
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Log.Format != "" {
		base.Log.Format = override.Log.Format
	}
	return base
}

func (c *Config) applyEnv() {
	setString(&c.Server.Addr, "ADDR")
	setString(&c.Server.CertFile, "TLS_CERT")
	setString(&c.Server.KeyFile, "TLS_KEY")
	setString(&c.Server.StaticDir, "STATIC_DIR")
	setString(&c.Server.DocsDir, "DOCS_DIR")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Auth.TokenKey, "TOKEN_KEY")
	setString(&c.Telegram.BotToken, "TOKEN_BOT")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Auth.RateLimit = f
		} else {
			log.Warn().Str("value", v).Msg("config: invalid RATE_LIMIT")
		}
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Auth.RateBurst = n
		} else {
			log.Warn().Str("value", v).Msg("config: invalid RATE_BURST")
		}
	}
	if v := os.Getenv("ADMIN_PEER_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.AdminChatID = id
		} else {
			log.Warn().Str("value", v).Msg("config: invalid ADMIN_PEER_ID")
		}
	}
	if v := os.Getenv("SECURE_COOKIE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Auth.SecureCookie = b
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
