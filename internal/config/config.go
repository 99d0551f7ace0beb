package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const devJWTSecret = "dev-secret-change-me"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"` // SQLite database file path
}

// HTTPConfig contains the JSON API listener settings.
type HTTPConfig struct {
	Address         string   `yaml:"address" validate:"required"`
	AllowedOrigins  []string `yaml:"allowedOrigins" validate:"dive,required"`
	ShutdownTimeout int      `yaml:"shutdownTimeoutSeconds" validate:"min=1"`
}

// GRPCConfig contains gRPC server settings. An empty address disables gRPC.
type GRPCConfig struct {
	Address string `yaml:"address"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"` // JWT signing secret
}

// LogConfig feeds logging.New.
type LogConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Dir   string `yaml:"dir"`
}

var validate = validator.New()

// ShutdownGrace returns the graceful shutdown budget for both listeners.
func (h HTTPConfig) ShutdownGrace() time.Duration {
	return time.Duration(h.ShutdownTimeout) * time.Second
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, then environment variables (a .env file is read first if present).
// JWT_SECRET must end up non-empty.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load(devJWTSecret)
}

func load(defaultSecret string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{Path: "floodsos.db"},
		HTTP: HTTPConfig{
			Address:         ":8000",
			AllowedOrigins:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
			ShutdownTimeout: 10,
		},
		GRPC: GRPCConfig{Address: ":50051"},
		Auth: AuthConfig{JWTSecret: defaultSecret},
		Log:  LogConfig{Env: "development", Level: "info"},
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := mergeFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.HTTP.Address = getEnv("HTTP_ADDRESS", cfg.HTTP.Address)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.HTTP.AllowedOrigins = splitList(origins)
	}
	timeout, err := getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", cfg.HTTP.ShutdownTimeout)
	if err != nil {
		return nil, err
	}
	cfg.HTTP.ShutdownTimeout = timeout
	cfg.GRPC.Address = getEnv("GRPC_ADDRESS", cfg.GRPC.Address)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Log.Env = getEnv("APP_ENV", cfg.Log.Env)
	cfg.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", cfg.Log.Level))
	cfg.Log.Dir = getEnv("LOG_DIR", cfg.Log.Dir)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto cfg. Keys absent from the file keep their value.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %s, Log: %s/%s, Auth: *** (masked) ***}",
		c.Database.Path, c.HTTP.Address, c.GRPC.Address, c.Log.Env, c.Log.Level)
}
