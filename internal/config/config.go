package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Shop      ShopConfig
	TextGen   TextGenConfig
	Document  DocumentConfig
	Feed      FeedConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// AuthConfig holds the staff login contract: a single shared access code
// (stored as a bcrypt hash) exchanged for a JWT carrying the staff name.
type AuthConfig struct {
	JWTSecret      string
	TokenExpiry    time.Duration
	AccessCodeHash string
	AccessCode     string // plain fallback for development; hashed at startup
}

// ShopConfig is the fixed shop identity printed on every receipt.
type ShopConfig struct {
	Name         string
	TagLine      string
	AddressLine1 string
	AddressLine2 string
	Phone        string
	Email        string
}

// TextGenConfig configures the external text/estimation service client.
// An empty API key disables the client; fallbacks are used instead.
type TextGenConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type DocumentConfig struct {
	Renderer string // "pdf" or "none"
}

// FeedConfig controls the live receipt feed.
type FeedConfig struct {
	PollInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "repairdesk-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "repairdesk")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("AUTH_ACCESS_CODE_HASH", "")
	viper.SetDefault("AUTH_ACCESS_CODE", "")
	viper.SetDefault("SHOP_NAME", "iPremium Repairs")
	viper.SetDefault("SHOP_TAGLINE", "Authorized Device Service Centre")
	viper.SetDefault("SHOP_ADDRESS_LINE1", "12 MG Road")
	viper.SetDefault("SHOP_ADDRESS_LINE2", "Bengaluru 560001")
	viper.SetDefault("SHOP_PHONE", "+91 80 4000 1234")
	viper.SetDefault("SHOP_EMAIL", "service@ipremiumrepairs.in")
	viper.SetDefault("TEXTGEN_API_KEY", "")
	viper.SetDefault("TEXTGEN_BASE_URL", "")
	viper.SetDefault("TEXTGEN_MODEL", "gemini-1.5-flash")
	viper.SetDefault("TEXTGEN_TIMEOUT_SECONDS", 20)
	viper.SetDefault("DOCUMENT_RENDERER", "pdf")
	viper.SetDefault("FEED_POLL_SECONDS", 15)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Auth: AuthConfig{
			JWTSecret:      viper.GetString("JWT_SECRET"),
			TokenExpiry:    time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			AccessCodeHash: viper.GetString("AUTH_ACCESS_CODE_HASH"),
			AccessCode:     viper.GetString("AUTH_ACCESS_CODE"),
		},
		Shop: ShopConfig{
			Name:         viper.GetString("SHOP_NAME"),
			TagLine:      viper.GetString("SHOP_TAGLINE"),
			AddressLine1: viper.GetString("SHOP_ADDRESS_LINE1"),
			AddressLine2: viper.GetString("SHOP_ADDRESS_LINE2"),
			Phone:        viper.GetString("SHOP_PHONE"),
			Email:        viper.GetString("SHOP_EMAIL"),
		},
		TextGen: TextGenConfig{
			APIKey:  viper.GetString("TEXTGEN_API_KEY"),
			BaseURL: viper.GetString("TEXTGEN_BASE_URL"),
			Model:   viper.GetString("TEXTGEN_MODEL"),
			Timeout: time.Duration(viper.GetInt("TEXTGEN_TIMEOUT_SECONDS")) * time.Second,
		},
		Document: DocumentConfig{
			Renderer: viper.GetString("DOCUMENT_RENDERER"),
		},
		Feed: FeedConfig{
			PollInterval: time.Duration(viper.GetInt("FEED_POLL_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
