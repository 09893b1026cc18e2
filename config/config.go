package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Admin      AdminConfig
	Cloudinary CloudinaryConfig
	Upload     UploadConfig
	SMTP       SMTPConfig
	Log        LogConfig
	Metrics    MetricsConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// TrustedProxies lists the proxy addresses or CIDRs whose
	// X-Forwarded-For is honoured. Empty means the peer address is the client.
	TrustedProxies []string
}

// DatabaseConfig carries two DSNs: the admin one bypasses row restrictions,
// the public one is meant for a restricted database user. PublicDSN falls back
// to DSN when unset.
type DatabaseConfig struct {
	Driver          string // mysql | postgres
	DSN             string
	PublicDSN       string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt, see `server hash-password`
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type UploadConfig struct {
	Folder       string
	MaxSizeBytes int64
}

// SMTPConfig is optional; enquiry e-mail alerts are disabled when Host is empty.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo []string
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

type RateLimitConfig struct {
	EnquiryLimit  int
	EnquiryWindow time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8099"),
			Env:            getEnv("APP_ENV", "development"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "mysql"),
			DSN:             getEnv("DB_DSN", "catalog:catalog@tcp(localhost:3306)/catalog?charset=utf8mb4&parseTime=True&loc=UTC"),
			PublicDSN:       getEnv("DB_PUBLIC_DSN", ""),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_SECRET", "change-me-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_EXPIRY", 12*time.Hour),
			Issuer:       getEnv("JWT_ISSUER", "catalog"),
		},
		Admin: AdminConfig{
			Email:        strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", "admin@example.com"))),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		Upload: UploadConfig{
			Folder:       getEnv("UPLOAD_FOLDER", "catalog"),
			MaxSizeBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5<<20)),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@example.com"),
			NotifyTo: getEnvAsList("SMTP_NOTIFY_TO"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		RateLimit: RateLimitConfig{
			EnquiryLimit:  getEnvAsInt("ENQUIRY_RATE_LIMIT", 10),
			EnquiryWindow: getEnvAsDuration("ENQUIRY_RATE_WINDOW", time.Minute),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate rejects settings that must not reach production with their defaults.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		errs = append(errs, errors.New("DB_DRIVER must be mysql or postgres"))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}
	if c.IsProduction() {
		if c.JWT.AccessSecret == "" || c.JWT.AccessSecret == "change-me-in-production" {
			errs = append(errs, errors.New("JWT_SECRET must be set in production"))
		}
		if c.Admin.PasswordHash == "" {
			errs = append(errs, errors.New("ADMIN_PASSWORD_HASH must be set in production"))
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
