package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Ingest    IngestConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// IngestConfig holds document parsing settings.
type IngestConfig struct {
	// RepairJSON retries malformed structured documents through
	// json-repair before treating them as unparseable.
	RepairJSON bool `mapstructure:"repair_json"`
}

// RateLimitConfig holds per-client request throttling settings.
type RateLimitConfig struct {
	RequestsPerSec float64 `mapstructure:"requests_per_sec"`
	Burst          int     `mapstructure:"burst"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the TAXRECON_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TAXRECON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Ingest defaults
	v.SetDefault("ingest.repair_json", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.requests_per_sec", 10)
	v.SetDefault("ratelimit.burst", 20)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "TAXRECON_SERVER_PORT",
		"server.read_timeout":        "TAXRECON_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "TAXRECON_SERVER_WRITE_TIMEOUT",
		"server.environment":         "TAXRECON_SERVER_ENVIRONMENT",
		"upload.max_file_size_mb":    "TAXRECON_UPLOAD_MAX_FILE_SIZE_MB",
		"ingest.repair_json":         "TAXRECON_INGEST_REPAIR_JSON",
		"ratelimit.requests_per_sec": "TAXRECON_RATELIMIT_REQUESTS_PER_SEC",
		"ratelimit.burst":            "TAXRECON_RATELIMIT_BURST",
		"cors.allowed_origins":       "TAXRECON_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TAXRECON_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TAXRECON_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Ingest = IngestConfig{
		RepairJSON: v.GetBool("ingest.repair_json"),
	}
	cfg.RateLimit = RateLimitConfig{
		RequestsPerSec: v.GetFloat64("ratelimit.requests_per_sec"),
		Burst:          v.GetInt("ratelimit.burst"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
