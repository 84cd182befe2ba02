package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Config struct {
	PostgresURI        string
	RedisURI           string
	ListenAddr         string
	FrontendURL        string
	SecretKey          string
	CookieName         string
	TokenCryptKey      string
	FacebookAPIBase    string
	InstagramAPIBase   string
	LinkedinAPIBase    string
	PublishTimeout     time.Duration
	PublishConcurrency int
	AuditQueueSize     int
	R2                 R2
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", "localhost:6379"),
		ListenAddr:         getEnv("LISTEN_ADDR", ":3000"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:          getEnv("SECRET_KEY", ""),
		CookieName:         getEnv("COOKIE_NAME", "socialdesk_token"),
		TokenCryptKey:      getEnv("TOKEN_CRYPT_KEY", ""),
		FacebookAPIBase:    getEnv("FACEBOOK_API_BASE", "https://graph.facebook.com/v19.0"),
		InstagramAPIBase:   getEnv("INSTAGRAM_API_BASE", "https://graph.facebook.com/v19.0"),
		LinkedinAPIBase:    getEnv("LINKEDIN_API_BASE", "https://api.linkedin.com/v2"),
		PublishTimeout:     getEnvDuration("PUBLISH_TIMEOUT", 30*time.Second),
		PublishConcurrency: getEnvInt("PUBLISH_CONCURRENCY", 10),
		AuditQueueSize:     getEnvInt("AUDIT_QUEUE_SIZE", 1024),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
