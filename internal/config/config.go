package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB     DBConfig
	Server ServerConfig
	Auth   AuthConfig
	Store  StoreConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AuthConfig holds credential settings
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// StoreConfig holds settings for the persistence layer
type StoreConfig struct {
	Timeout        time.Duration
	MigrationsPath string
	SeedFile       string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		// SQLite in-memory database, foreign keys enabled on every pooled connection
		if c.Name != "" && c.Name != "geotrip" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", c.Name)
		}
		return "file::memory:?cache=shared&_fk=1"
	}
	// PostgreSQL connection string
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "geotrip"),
			Password: getEnv("DB_PASSWORD", "geotrip_password"),
			Name:     getEnv("DB_NAME", "geotrip"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   time.Duration(getEnvAsInt("ACCESS_TOKEN_TTL_MIN", 60)) * time.Minute,
			BcryptCost: getEnvAsInt("BCRYPT_COST", 10),
		},
		Store: StoreConfig{
			Timeout:        getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
			SeedFile:       getEnv("SEED_FILE", "data/catalog.json"),
		},
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
