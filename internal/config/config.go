package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	DB          DatabaseConfig
	RateLimiter RateLimiterConfig
	Mail        MailConfig
	Auth        AuthConfig
	Minio       MinioConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Certificate CertificateConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type AuthConfig struct {
	JWT_SECRET        string
	GoogleOAuthConfig GoogleOAuthConfig
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// When set, only Google accounts on this domain may sign in, e.g. "university.edu".
	AllowedDomain string
}

type DatabaseConfig struct {
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DB_HOST, c.DB_USERNAME, c.DB_PASSWORD, c.DB_DATABASE, c.DB_PORT)
}

const (
	MailDriverSendGrid = "sendgrid"
	MailDriverSMTP     = "smtp"
)

type MailConfig struct {
	// sendgrid or smtp
	DRIVER     string
	SEND_GRID  SendGridConfig
	SMTP       SMTPConfig
	FROM_EMAIL string
	FROM_NAME  string
}

type SendGridConfig struct {
	API_KEY string
}

type SMTPConfig struct {
	HOST     string
	PORT     int
	USERNAME string
	PASSWORD string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	REGION     string
	USE_SSL    bool
}

// An empty ADDR disables the verification cache.
type RedisConfig struct {
	ADDR      string
	PASSWORD  string
	DB        int
	CACHE_TTL time.Duration
}

// An empty HOST disables the mail queue, mails are then sent inline.
type RabbitMQConfig struct {
	HOST     string
	PORT     string
	USER     string
	PASSWORD string
}

func (c RabbitMQConfig) Enabled() bool {
	return c.HOST != ""
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.USER, c.PASSWORD, c.HOST, c.PORT)
}

type CertificateConfig struct {
	// Prefix of the link encoded in the QR code, the verification code is appended
	VERIFICATION_URL   string
	FONT_METADATA_PATH string
	TMP_DIR            string
	DEFAULT_RECIPIENT  string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		DB: DatabaseConfig{
			DB_HOST:      env.GetString("DB_HOST", "127.0.0.1"),
			DB_PORT:      env.GetString("DB_PORT", "5432"),
			DB_USERNAME:  env.GetString("DB_USERNAME", "root"),
			DB_PASSWORD:  env.GetString("DB_PASSWORD", ""),
			DB_DATABASE:  env.GetString("DB_DATABASE", "facultycert"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            env.GetDuration("RATE_LIMIT_TIME_FRAME", time.Minute),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Mail: MailConfig{
			DRIVER:     env.GetString("MAIL_DRIVER", MailDriverSendGrid),
			FROM_EMAIL: env.GetString("MAIL_FROM_MAIL", ""),
			FROM_NAME:  env.GetString("MAIL_FROM_NAME", "FacultyCert"),
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("MAIL_SEND_GRID_API_KEY", ""),
			},
			SMTP: SMTPConfig{
				HOST:     env.GetString("MAIL_SMTP_HOST", "smtp.gmail.com"),
				PORT:     env.GetInt("MAIL_SMTP_PORT", 587),
				USERNAME: env.GetString("MAIL_SMTP_USERNAME", ""),
				PASSWORD: env.GetString("MAIL_SMTP_PASSWORD", ""),
			},
		},
		Auth: AuthConfig{
			JWT_SECRET: env.GetString("AUTH_JWT_SECRET", ""),
			GoogleOAuthConfig: GoogleOAuthConfig{
				ClientID:      env.GetString("GOOGLE_OAUTH_CLIENT_ID", ""),
				ClientSecret:  env.GetString("GOOGLE_OAUTH_CLIENT_SECRET", ""),
				RedirectURL:   env.GetString("GOOGLE_OAUTH_CALLBACK", "http://localhost:8080/api/v1/oauth/google/callback"),
				AllowedDomain: env.GetString("GOOGLE_OAUTH_ALLOWED_DOMAIN", ""),
			},
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "facultycert"),
			REGION:     env.GetString("MINIO_REGION", "us-east-1"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			ADDR:      env.GetString("REDIS_ADDR", ""),
			PASSWORD:  env.GetString("REDIS_PASSWORD", ""),
			DB:        env.GetInt("REDIS_DB", 0),
			CACHE_TTL: env.GetDuration("REDIS_VERIFICATION_CACHE_TTL", 10*time.Minute),
		},
		RabbitMQ: RabbitMQConfig{
			HOST:     env.GetString("RABBITMQ_HOST", ""),
			PORT:     env.GetString("RABBITMQ_PORT", "5672"),
			USER:     env.GetString("RABBITMQ_USER", "guest"),
			PASSWORD: env.GetString("RABBITMQ_PASSWORD", "guest"),
		},
		Certificate: CertificateConfig{
			VERIFICATION_URL:   env.GetString("APP_VERIFICATION_URL", "http://localhost:8080/api/v1/verify/"),
			FONT_METADATA_PATH: env.GetString("CERT_FONT_METADATA_PATH", "font_metadata.json"),
			TMP_DIR:            env.GetString("CERT_TMP_DIR", ""),
			DEFAULT_RECIPIENT:  env.GetString("CERT_DEFAULT_RECIPIENT", ""),
		},
	}
}
