package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store drivers for the shadow-collection key-value substrate.
const (
	StoreDriverFile     = "file"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
	Log      LogConfig
	Mail     MailConfig
	Chat     ChatConfig
	Exports  ExportsConfig
	Notify   NotifyConfig
}

// StoreConfig selects the persistence substrate for shadow collections.
type StoreConfig struct {
	Driver string
	Dir    string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs the admin session gate. AdminSecretHash, when set, takes
// precedence over the plaintext AdminSecret.
type SessionConfig struct {
	AdminSecret     string
	AdminSecretHash string
	SigningSecret   string
	TTL             time.Duration
	Issuer          string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MailConfig points at the external template-send service.
type MailConfig struct {
	BaseURL           string
	ServiceID         string
	PublicKey         string
	JobAlertTemplate  string
	WelcomeTemplate   string
	FromName          string
	RequestTimeout    time.Duration
	DisableDeliveries bool
}

// ChatConfig points at the external chat-completion endpoint. An empty Endpoint is
// surfaced to chat callers as a configuration warning, not a transport failure.
type ChatConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// ExportsConfig controls report storage and signed downloads.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
}

// NotifyConfig tunes the notification dispatch queue. MaxRetries zero keeps the
// default best-effort, no-retry delivery policy.
type NotifyConfig struct {
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		Dir:    v.GetString("STORE_DIR"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		AdminSecret:     v.GetString("ADMIN_SECRET"),
		AdminSecretHash: v.GetString("ADMIN_SECRET_HASH"),
		SigningSecret:   v.GetString("SESSION_SIGNING_SECRET"),
		TTL:             parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour),
		Issuer:          v.GetString("SESSION_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Mail = MailConfig{
		BaseURL:           v.GetString("MAIL_BASE_URL"),
		ServiceID:         v.GetString("MAIL_SERVICE_ID"),
		PublicKey:         v.GetString("MAIL_PUBLIC_KEY"),
		JobAlertTemplate:  v.GetString("MAIL_TEMPLATE_JOB_ALERT"),
		WelcomeTemplate:   v.GetString("MAIL_TEMPLATE_WELCOME"),
		FromName:          v.GetString("MAIL_FROM_NAME"),
		RequestTimeout:    parseDuration(v.GetString("MAIL_REQUEST_TIMEOUT"), 15*time.Second),
		DisableDeliveries: v.GetBool("MAIL_DISABLE_DELIVERIES"),
	}

	cfg.Chat = ChatConfig{
		Endpoint: v.GetString("CHAT_ENDPOINT"),
		Timeout:  parseDuration(v.GetString("CHAT_TIMEOUT"), 20*time.Second),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval: parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
	}

	cfg.Notify = NotifyConfig{
		BufferSize: v.GetInt("NOTIFY_BUFFER_SIZE"),
		MaxRetries: v.GetInt("NOTIFY_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("NOTIFY_RETRY_DELAY"), time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_DRIVER", StoreDriverFile)
	v.SetDefault("STORE_DIR", "./data")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "pmory")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ADMIN_SECRET", "")
	v.SetDefault("ADMIN_SECRET_HASH", "")
	v.SetDefault("SESSION_SIGNING_SECRET", "dev_secret")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_ISSUER", "pmory-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MAIL_BASE_URL", "https://api.emailjs.com/api/v1.0/email/send")
	v.SetDefault("MAIL_SERVICE_ID", "")
	v.SetDefault("MAIL_PUBLIC_KEY", "")
	v.SetDefault("MAIL_TEMPLATE_JOB_ALERT", "job_alert")
	v.SetDefault("MAIL_TEMPLATE_WELCOME", "welcome_job_alert")
	v.SetDefault("MAIL_FROM_NAME", "PMory Team")
	v.SetDefault("MAIL_REQUEST_TIMEOUT", "15s")
	v.SetDefault("MAIL_DISABLE_DELIVERIES", false)

	v.SetDefault("CHAT_ENDPOINT", "")
	v.SetDefault("CHAT_TIMEOUT", "20s")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")

	v.SetDefault("NOTIFY_BUFFER_SIZE", 16)
	v.SetDefault("NOTIFY_MAX_RETRIES", 0)
	v.SetDefault("NOTIFY_RETRY_DELAY", "1s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
