package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG_FILE", "DB_PATH", "HTTP_ADDRESS", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT_SECONDS", "GRPC_ADDRESS", "JWT_SECRET", "APP_ENV", "LOG_LEVEL", "LOG_DIR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.GRPC.Address == "" || cfg.HTTP.Address == "" || cfg.Database.Path == "" || cfg.Auth.JWTSecret == "" {
		t.Fatalf("unexpected empty defaults: %+v", cfg)
	}
	if cfg.HTTP.ShutdownGrace() != 10*time.Second {
		t.Fatalf("unexpected shutdown grace: %v", cfg.HTTP.ShutdownGrace())
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("GRPC_ADDRESS", ":1234")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is not set")
	}
	t.Setenv("JWT_SECRET", "x")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
	if cfg.Database.Path != "test.db" || cfg.GRPC.Address != ":1234" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "floodsos.yaml")
	body := `
database:
  path: /var/lib/floodsos/data.db
http:
  address: ":9000"
  allowedOrigins: ["https://sos.example.lk"]
log:
  level: debug
auth:
  jwtSecret: from-file
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDRESS", ":9100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.lk, https://b.lk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/var/lib/floodsos/data.db" {
		t.Fatalf("file value not applied: %q", cfg.Database.Path)
	}
	if cfg.HTTP.Address != ":9100" {
		t.Fatalf("env must win over file: %q", cfg.HTTP.Address)
	}
	if strings.Join(cfg.HTTP.AllowedOrigins, "|") != "https://a.lk|https://b.lk" {
		t.Fatalf("origins: %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.GRPC.Address != ":50051" || cfg.HTTP.ShutdownTimeout != 10 {
		t.Fatalf("defaults lost for keys missing in file: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Auth.JWTSecret != "from-file" {
		t.Fatalf("unexpected log/auth: %+v", cfg)
	}
	if strings.Contains(cfg.String(), "from-file") {
		t.Fatalf("secret leaked in String(): %s", cfg.String())
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "chatty")
	if _, err := LoadWithDefaults(); err == nil {
		t.Fatalf("expected validation error for log level")
	}

	clearEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")
	if _, err := LoadWithDefaults(); err == nil {
		t.Fatalf("expected error for non-integer timeout")
	}

	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadWithDefaults(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
