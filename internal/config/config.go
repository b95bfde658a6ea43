package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store drivers.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

// Identity providers.
const (
	AuthProviderFirebase = "firebase"
	AuthProviderHMAC     = "hmac"
)

// DefaultFirebaseCertsURL publishes the x509 certificates that sign Firebase ID tokens.
const DefaultFirebaseCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Seed     SeedConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host           string
	Port           int
	RequestTimeout int // seconds
}

// StoreConfig selects the document store backing the food collection.
type StoreConfig struct {
	Driver string // "mongo" or "postgres"
}

// MongoConfig holds MongoDB connection configuration.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds identity verification and session cookie configuration.
type AuthConfig struct {
	Provider          string // "firebase" or "hmac"
	FirebaseProjectID string
	FirebaseCertsURL  string
	HMACSecret        string
	CookieSecure      bool
}

// CORSConfig holds the single origin allowed to call the API with credentials.
type CORSConfig struct {
	AllowedOrigin string
}

// SeedConfig describes an optional food item import run at startup.
type SeedConfig struct {
	File  string
	Owner string
}

// S3Config holds AWS S3 configuration for seed files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "seeds/")
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 3000),
			RequestTimeout: getEnvAsInt("REQUEST_TIMEOUT", 15),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", StoreDriverMongo),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", ""),
			Database:   getEnv("MONGO_DATABASE", "foodDB"),
			Collection: getEnv("MONGO_COLLECTION", "foods"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "foodfridge"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			Provider:          getEnv("AUTH_PROVIDER", AuthProviderFirebase),
			FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
			FirebaseCertsURL:  getEnv("FIREBASE_CERTS_URL", DefaultFirebaseCertsURL),
			HMACSecret:        getEnv("AUTH_HMAC_SECRET", ""),
			CookieSecure:      getEnvAsBool("COOKIE_SECURE", true),
		},
		CORS: CORSConfig{
			AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "https://food-fridge-8be96.web.app"),
		},
		Seed: SeedConfig{
			File:  getEnv("SEED_FILE", ""),
			Owner: getEnv("SEED_OWNER", ""),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "seeds/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.RequestTimeout < 1 {
		return fmt.Errorf("request timeout must be at least 1 second")
	}

	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo URI is required")
		}
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return fmt.Errorf("mongo database and collection are required")
		}
	case StoreDriverPostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be mongo or postgres)", c.Store.Driver)
	}

	switch c.Auth.Provider {
	case AuthProviderFirebase:
		if c.Auth.FirebaseProjectID == "" {
			return fmt.Errorf("firebase project ID is required")
		}
		if c.Auth.FirebaseCertsURL == "" {
			return fmt.Errorf("firebase certs URL is required")
		}
	case AuthProviderHMAC:
		if len(c.Auth.HMACSecret) < 32 {
			return fmt.Errorf("HMAC secret must be at least 32 characters")
		}
	default:
		return fmt.Errorf("invalid auth provider: %s (must be firebase or hmac)", c.Auth.Provider)
	}

	if c.CORS.AllowedOrigin == "" {
		return fmt.Errorf("CORS allowed origin is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Seed.File != "" && c.Seed.Owner == "" {
		return fmt.Errorf("seed owner is required when a seed file is configured")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Timeout returns the per-request deadline.
func (c *ServerConfig) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
