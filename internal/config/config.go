package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port    string
	Env     string
	BaseURL string // public site origin, used in sign-in links and sitemap entries

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis (magic-link tokens, rate limits)
	RedisAddr string
	RedisDB   int

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Mail (AWS SES)
	MailEnabled bool
	MailFrom    string
	AWSRegion   string

	// Mailing-list provider
	AudienceBaseURL string
	AudienceAPIKey  string
	AudienceListID  string

	// Vectorizer provider
	VectorizerBaseURL string
	VectorizerAPIKey  string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("ENV", "development"),
		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "meridian"),
		DBPassword: getEnv("DB_PASSWORD", "meridian"),
		DBName:     getEnv("DB_NAME", "meridian"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   0,

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Mail
		MailEnabled: getEnv("MAIL_ENABLED", "false") == "true",
		MailFrom:    getEnv("MAIL_FROM", "no-reply@meridian.vc"),
		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),

		// Mailing list
		AudienceBaseURL: getEnv("AUDIENCE_BASE_URL", "https://api.audiencehq.com"),
		AudienceAPIKey:  getEnv("AUDIENCE_API_KEY", ""),
		AudienceListID:  getEnv("AUDIENCE_LIST_ID", ""),

		// Vectorizer
		VectorizerBaseURL: getEnv("VECTORIZER_BASE_URL", "https://api.vectorizer.ai"),
		VectorizerAPIKey:  getEnv("VECTORIZER_API_KEY", ""),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
