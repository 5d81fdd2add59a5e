package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scartix.yaml")
	yaml := `
server:
  addr: ":9443"
  certFile: server.crt
  keyFile: server.key
database:
  url: "postgres://u:p@db/scartix"
auth:
  tokenKey: from-file
  rateBurst: 4
telegram:
  botToken: bot
  adminChatId: 42
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv("TOKEN_KEY", "from-env")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Server.Addr != ":9443" || !cfg.Server.TLS() {
		t.Fatalf("server: %+v", cfg.Server)
	}
	if cfg.Auth.TokenKey != "from-env" {
		t.Fatalf("env should override file, got %q", cfg.Auth.TokenKey)
	}
	if cfg.Auth.RateBurst != 4 || cfg.Auth.RateLimit != 5 {
		t.Fatalf("rate: %v/%d", cfg.Auth.RateLimit, cfg.Auth.RateBurst)
	}
	if !cfg.Telegram.Enabled() {
		t.Fatal("telegram should be enabled")
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level: %q", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRequiresTokenKey(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingTokenKey) {
		t.Fatalf("expected ErrMissingTokenKey, got %v", err)
	}
	cfg.Auth.TokenKey = "k"
	cfg.Auth.RateBurst = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero burst")
	}
}
