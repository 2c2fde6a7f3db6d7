package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"profile-service/pkg/logger"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverMemory   = "memory"

	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"

	UploadNamingTimestamp = "timestamp"
	UploadNamingUUID      = "uuid"
)

type Config struct {
	HTTPPort           string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	ShutdownTimeout    time.Duration
	Env                string
	CORSAllowedOrigins []string
	MaxMultipartMemory int64
	DB                 DBConfig
	Upload             UploadConfig
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type UploadConfig struct {
	Dir      string
	Backend  string
	Naming   string
	S3Bucket string
	S3Region string
	S3Prefix string
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		HTTPReadTimeout:    getEnvDuration("HTTP_READ_TIMEOUT", 60*time.Second),
		HTTPWriteTimeout:   getEnvDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
		HTTPIdleTimeout:    getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		Env:                getEnv("ENV", "development"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MaxMultipartMemory: int64(getEnvInt("MAX_MULTIPART_MEMORY", 32<<20)),
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DBDriverPostgres)),
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "profiles"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
			Backend:  strings.ToLower(getEnv("UPLOAD_BACKEND", UploadBackendLocal)),
			Naming:   strings.ToLower(getEnv("UPLOAD_NAMING", UploadNamingTimestamp)),
			S3Bucket: getEnv("UPLOAD_S3_BUCKET", ""),
			S3Region: getEnv("UPLOAD_S3_REGION", ""),
			S3Prefix: getEnv("UPLOAD_S3_PREFIX", "uploads"),
		},
	}

	switch cfg.DB.Driver {
	case DBDriverPostgres, DBDriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	if err := cfg.Upload.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c UploadConfig) validate() error {
	switch c.Backend {
	case UploadBackendLocal:
	case UploadBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("UPLOAD_S3_BUCKET is required for the s3 upload backend")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_BACKEND %q", c.Backend)
	}

	switch c.Naming {
	case UploadNamingTimestamp, UploadNamingUUID:
	default:
		return fmt.Errorf("unknown UPLOAD_NAMING %q", c.Naming)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
