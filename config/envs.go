package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string // Host IP for the server
	RESTPort          int    // Port for the REST API
	GinMode           string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string // Secret key for JWT signing
	JWTIssuer         string // Issuer claim for JWTs
	RedisAddr         string // Address of the redis server holding session snapshots
	RedisPassword     string // Password for the redis server
	RedisDB           int    // Redis logical database
	SessionTTLSeconds int    // Idle lifetime of a session snapshot
	DBHost            string // Hostname or IP address for the maze database
	DBPort            int    // Port number for the maze database
	DBUser            string // Username for the maze database
	DBPassword        string // Password for the maze database
	DBName            string // Name of the maze database
	StepDelayMS       int    // Delay between streamed playback steps (in milliseconds)
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:            getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:          getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:         getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:         getEnvWithDefault("JWT_ISSUER", "vinom-robomaze"),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:     getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsIntWithDefault("REDIS_DB", 0),
		SessionTTLSeconds: getEnvAsIntWithDefault("SESSION_TTL_SECONDS", 3600),
		DBHost:            getEnvWithDefault("DB_HOST", ""),
		DBPort:            getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:            getEnvWithDefault("DB_USER", ""),
		DBPassword:        getEnvWithDefault("DB_PASS", ""),
		DBName:            getEnvWithDefault("DB_NAME", "robomaze"),
		StepDelayMS:       getEnvAsIntWithDefault("STEP_DELAY_MS", 500),
	}
}

// MustJWTSecret returns the JWT secret or logs a fatal error if it is not set.
// The server cannot issue session tokens without it; the CLI never calls it.
func (c Config) MustJWTSecret() string {
	if c.JWTSecret == "" {
		log.Fatalf("%s[APP]%s %s[FATAL]%s Environment variable JWT_SECRET is not set", ColorGreen, ColorReset, ColorRed, ColorReset)
	}
	return c.JWTSecret
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer.
// It returns the default when the variable is unset and logs a fatal error when it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
