package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	S3     S3Config
	Lyzr   LyzrConfig
	Log    LogConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port int
}

type MongoConfig struct {
	URL      string
	Database string
}

type S3Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
}

type LyzrConfig struct {
	SessionURL string
	APIKey     string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

type CORSConfig struct {
	ExtraOrigins string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is fine; deployments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("PORT", 8080),
		},
		Mongo: MongoConfig{
			URL:      envString("MONGODB_URL", "mongodb://localhost:27017"),
			Database: envString("DATABASE_NAME", "procurement"),
		},
		S3: S3Config{
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Region:    envString("AWS_REGION", "us-east-1"),
			Bucket:    envString("S3_BUCKET_NAME", "lyzr-procurement"),
		},
		Lyzr: LyzrConfig{
			SessionURL: envString("LYZR_SESSION_URL", "https://agent-prod.studio.lyzr.ai/v1/sessions"),
			APIKey:     os.Getenv("LYZR_API_KEY"),
		},
		Log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "text"),
		},
		CORS: CORSConfig{
			ExtraOrigins: os.Getenv("CORS_ORIGINS"),
		},
	}

	return cfg, nil
}

// CORSOrigins returns the allowed origins: local dev hosts plus any extras
// from CORS_ORIGINS (comma-separated).
func (c *Config) CORSOrigins() []string {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:3000",
	}
	for _, o := range strings.Split(c.CORS.ExtraOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
