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

const (
	StorageMinio = "minio"
	StorageS3    = "s3"
)

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	AppPort  string `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`

	// --- Redis ---
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	CacheEnabled  bool   `mapstructure:"CACHE_ENABLED"`

	// --- Storage ---
	StorageProvider string `mapstructure:"STORAGE_PROVIDER"` // minio | s3
	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3Region        string `mapstructure:"S3_REGION"`
	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3AccessKey     string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey     string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL        bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle     bool   `mapstructure:"S3_PATH_STYLE"`

	// --- Auth ---
	AuthJWTSecret  string        `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer     string        `mapstructure:"AUTH_ISSUER"`
	AuthTokenTTL   time.Duration `mapstructure:"AUTH_TOKEN_TTL"`
	OTPTTL         time.Duration `mapstructure:"OTP_TTL"`
	OTPCooldown    time.Duration `mapstructure:"OTP_COOLDOWN"`
	OTPMaxAttempts int           `mapstructure:"OTP_MAX_ATTEMPTS"`

	// --- Таймауты внешних вызовов ---
	CacheTimeout   time.Duration `mapstructure:"CACHE_TIMEOUT"`
	DBTimeout      time.Duration `mapstructure:"DB_TIMEOUT"`
	StorageTimeout time.Duration `mapstructure:"STORAGE_TIMEOUT"`
	NotifyTimeout  time.Duration `mapstructure:"NOTIFY_TIMEOUT"`

	// --- TTL кешей ---
	FeedTTL      time.Duration `mapstructure:"CACHE_FEED_TTL"`
	ListTTL      time.Duration `mapstructure:"CACHE_LIST_TTL"`
	DocTTL       time.Duration `mapstructure:"CACHE_DOC_TTL"`
	ProfileTTL   time.Duration `mapstructure:"CACHE_PROFILE_TTL"`
	UserStateTTL time.Duration `mapstructure:"CACHE_USER_STATE_TTL"`
	AvatarURLTTL time.Duration `mapstructure:"CACHE_AVATAR_URL_TTL"`

	// --- Лента и комментарии ---
	FeedDefaultLimit int `mapstructure:"FEED_DEFAULT_LIMIT"`
	FeedMaxLimit     int `mapstructure:"FEED_MAX_LIMIT"`
	CommentMaxDepth  int `mapstructure:"COMMENT_MAX_DEPTH"`
	MaxUploadMB      int `mapstructure:"MAX_UPLOAD_MB"`

	// --- Внешние сервисы ---
	ChatServiceURL string `mapstructure:"CHAT_SERVICE_URL"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
}

var defaults = map[string]any{
	"APP_ENV":              "dev",
	"APP_PORT":             ":8080",
	"LOG_LEVEL":            "info",
	"DB_PORT":              5432,
	"DB_SCHEME":            "public",
	"REDIS_ADDR":           "localhost:6379",
	"CACHE_ENABLED":        true,
	"STORAGE_PROVIDER":     StorageMinio,
	"S3_REGION":            "us-east-1",
	"AUTH_ISSUER":          "edustore",
	"AUTH_TOKEN_TTL":       24 * time.Hour,
	"OTP_TTL":              5 * time.Minute,
	"OTP_COOLDOWN":         time.Minute,
	"OTP_MAX_ATTEMPTS":     5,
	"CACHE_TIMEOUT":        300 * time.Millisecond,
	"DB_TIMEOUT":           5 * time.Second,
	"STORAGE_TIMEOUT":      5 * time.Second,
	"NOTIFY_TIMEOUT":       10 * time.Second,
	"CACHE_FEED_TTL":       60 * time.Second,
	"CACHE_LIST_TTL":       120 * time.Second,
	"CACHE_DOC_TTL":        600 * time.Second,
	"CACHE_PROFILE_TTL":    300 * time.Second,
	"CACHE_USER_STATE_TTL": time.Hour,
	"CACHE_AVATAR_URL_TTL": time.Hour,
	"FEED_DEFAULT_LIMIT":   20,
	"FEED_MAX_LIMIT":       50,
	"COMMENT_MAX_DEPTH":    3,
	"MAX_UPLOAD_MB":        25,
	"MAIL_FROM":            "no-reply@edustore.local",
}

// String реализует интерфейс Stringer, секреты маскируются
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppEnv: %s\n", c.AppEnv))
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))
	sb.WriteString(masked("DBPassword", c.DBPassword))

	sb.WriteString(fmt.Sprintf("  RedisAddr: %s (db=%d, enabled=%v)\n", c.RedisAddr, c.RedisDB, c.CacheEnabled))
	sb.WriteString(masked("RedisPassword", c.RedisPassword))

	sb.WriteString(fmt.Sprintf("  StorageProvider: %s\n", c.StorageProvider))
	sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	sb.WriteString(masked("S3AccessKey", c.S3AccessKey))
	sb.WriteString(masked("S3SecretKey", c.S3SecretKey))
	sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
	sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))

	sb.WriteString(masked("AuthJWTSecret", c.AuthJWTSecret))
	sb.WriteString(fmt.Sprintf("  AuthTokenTTL: %s\n", c.AuthTokenTTL))
	sb.WriteString(fmt.Sprintf("  FeedMaxLimit: %d\n", c.FeedMaxLimit))
	sb.WriteString(fmt.Sprintf("  CommentMaxDepth: %d\n", c.CommentMaxDepth))
	sb.WriteString(fmt.Sprintf("  ChatServiceURL: %s\n", c.ChatServiceURL))

	return sb.String()
}

func masked(name, v string) string {
	if v != "" {
		return fmt.Sprintf("  %s: ********\n", name)
	}
	return fmt.Sprintf("  %s: (empty)\n", name)
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	keys := []string{
		"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_DB", "REDIS_PASSWORD",
		"S3_ENDPOINT", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_USE_SSL", "S3_PATH_STYLE",
		"AUTH_JWT_SECRET", "CHAT_SERVICE_URL",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageProvider {
	case StorageMinio, StorageS3:
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}
	if c.AuthJWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	if c.FeedMaxLimit <= 0 || c.FeedDefaultLimit <= 0 || c.FeedDefaultLimit > c.FeedMaxLimit {
		return fmt.Errorf("bad feed limits: default=%d max=%d", c.FeedDefaultLimit, c.FeedMaxLimit)
	}
	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
