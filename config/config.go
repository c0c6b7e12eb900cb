package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported persistence drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	// Store
	StoreDriver string
	SQLitePath  string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Connection handling
	ConnectRetries    int
	ConnectRetryDelay time.Duration

	// Seat maps
	SeatCapacity int

	// Logging
	LogLevel   string
	LogFile    string
	LogConsole bool

	// Server
	ServerPort  string
	CORSOrigins []string
	EnablePprof bool
}

// Load loads configuration from environment variables.
// envFiles are passed to godotenv; with none it tries ./.env.
func Load(envFiles ...string) *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load(envFiles...)

	config := &Config{
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		SQLitePath:  getEnv("SQLITE_PATH", "railways.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "railways"),

		ConnectRetries:    getIntEnv("DB_CONNECT_RETRIES", 30),
		ConnectRetryDelay: getDurationEnv("DB_CONNECT_RETRY_DELAY", 2*time.Second),

		SeatCapacity: getIntEnv("SEAT_CAPACITY", 50),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    os.Getenv("LOG_FILE"),
		LogConsole: getBoolEnv("LOG_CONSOLE", true),

		ServerPort:  getEnv("SERVER_PORT", "8080"),
		CORSOrigins: getListEnv("CORS_ORIGINS", []string{"*"}),
		EnablePprof: getBoolEnv("ENABLE_PPROF", false),
	}

	switch config.StoreDriver {
	case DriverSQLite:
		if config.SQLitePath == "" {
			log.Println("WARNING: SQLITE_PATH not set")
		}
	case DriverPostgres:
		if config.DBPassword == "" {
			log.Println("WARNING: DB_PASSWORD not set")
		}
	default:
		log.Printf("WARNING: Unknown STORE_DRIVER: %s (using sqlite as fallback)\n", config.StoreDriver)
		config.StoreDriver = DriverSQLite
	}

	if config.SeatCapacity < 1 {
		log.Printf("WARNING: invalid SEAT_CAPACITY %d (using 50)\n", config.SeatCapacity)
		config.SeatCapacity = 50
	}

	return config
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.StoreDriver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
		)
	}
	return c.SQLitePath
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated variable, trimming blanks and dropping
// empty entries
func getListEnv(key string, defaultValue []string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
