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

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Redis    RedisConfig
	Email    EmailConfig
	Uploads  UploadsConfig
	Gallery  GalleryConfig
	CORS     CORSConfig
	Log      LogConfig
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
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// EmailConfig carries the Resend credential and the fixed recipient set.
type EmailConfig struct {
	ResendAPIKey   string
	AdminEmail     string
	CompanyEmail   string
	FromAddress    string
	VerifiedDomain string
}

// NotificationRecipients returns the dual-delivery list: every new
// submission is announced to both the admin and the company address.
func (c EmailConfig) NotificationRecipients() []string {
	return []string{c.AdminEmail, c.CompanyEmail}
}

// UploadsConfig governs attachment and gallery file staging.
type UploadsConfig struct {
	UploadDir         string
	ImagesDir         string
	MaxFileSizeBytes  int64
	AllowedExtensions []string
	ImageExtensions   []string
	EmbedLimitBytes   int64
}

// GalleryConfig tunes gallery listing cache behaviour.
type GalleryConfig struct {
	CacheTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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
		Enabled:  v.GetBool("ENABLE_REDIS_CACHE"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Email = EmailConfig{
		ResendAPIKey:   v.GetString("RESEND_API_KEY"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		CompanyEmail:   v.GetString("COMPANY_EMAIL"),
		FromAddress:    v.GetString("EMAIL_FROM_ADDRESS"),
		VerifiedDomain: v.GetString("VERIFIED_DOMAIN"),
	}

	maxFileSize := v.GetInt64("UPLOAD_MAX_FILE_SIZE")
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}
	embedLimit := v.GetInt64("EMAIL_ATTACHMENT_EMBED_LIMIT")
	if embedLimit <= 0 {
		embedLimit = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		UploadDir:         v.GetString("UPLOAD_DIR"),
		ImagesDir:         v.GetString("IMAGES_DIR"),
		MaxFileSizeBytes:  maxFileSize,
		AllowedExtensions: splitAndTrim(v.GetString("UPLOAD_ALLOWED_EXTENSIONS")),
		ImageExtensions:   splitAndTrim(v.GetString("UPLOAD_IMAGE_EXTENSIONS")),
		EmbedLimitBytes:   embedLimit,
	}

	cfg.Gallery = GalleryConfig{
		CacheTTL: parseDuration(v.GetString("GALLERY_CACHE_TTL"), 5*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mechgenz")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_REDIS_CACHE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("ADMIN_EMAIL", "mechgenz4@gmail.com")
	v.SetDefault("COMPANY_EMAIL", "info@mechgenz.com")
	v.SetDefault("EMAIL_FROM_ADDRESS", "MECHGENZ Website <info@mechgenz.com>")
	v.SetDefault("VERIFIED_DOMAIN", "")

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("IMAGES_DIR", "./images")
	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("UPLOAD_ALLOWED_EXTENSIONS", ".jpg,.jpeg,.png,.gif,.webp,.pdf,.doc,.docx,.txt")
	v.SetDefault("UPLOAD_IMAGE_EXTENSIONS", ".jpg,.jpeg,.png,.gif,.webp")
	v.SetDefault("EMAIL_ATTACHMENT_EMBED_LIMIT", 5*1024*1024)

	v.SetDefault("GALLERY_CACHE_TTL", "5m")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
