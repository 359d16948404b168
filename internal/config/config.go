package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port                 string
	Environment          string
	AllowedOrigins       []string
	FrontendURL          string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	JWTSecret            string
	GameTokenTTL         time.Duration
	DropDelay            time.Duration
	AIThinkDelay         time.Duration
	SessionIdleTimeout   time.Duration
	CleanupInterval      time.Duration
	LogLevel             string
	LogFormat            string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" && trimmed != frontendURL {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	// Database is optional; scores stay in memory without it
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))

	AppConfig = &Config{
		Port:                 port,
		Environment:          environment,
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		JWTSecret:            GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		GameTokenTTL:         GetEnvAsDuration("GAME_TOKEN_TTL_HOURS", 24, time.Hour),
		DropDelay:            GetEnvAsDuration("DROP_DELAY_MS", 300, time.Millisecond),
		AIThinkDelay:         GetEnvAsDuration("AI_THINK_DELAY_MS", 500, time.Millisecond),
		SessionIdleTimeout:   GetEnvAsPositiveDuration("SESSION_IDLE_MINUTES", 30, time.Minute),
		CleanupInterval:      GetEnvAsPositiveDuration("CLEANUP_INTERVAL_MINUTES", 5, time.Minute),
		LogLevel:             GetEnv("LOG_LEVEL", "info"),
		LogFormat:            GetEnv("LOG_FORMAT", "text"),
	}

	return AppConfig
}

// IsProduction gates secure cookies and release-mode gin.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SetupLogging applies LOG_LEVEL and LOG_FORMAT to the standard logger.
func (c *Config) SetupLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Printf("Invalid log level %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit. Zero is allowed.
func GetEnvAsDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(GetEnvAsInt(key, defaultValue)) * unit
}

// GetEnvAsPositiveDuration is GetEnvAsDuration for settings that must be
// above zero, such as ticker intervals.
func GetEnvAsPositiveDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	value := GetEnvAsInt(key, defaultValue)
	if value <= 0 {
		log.Printf("Value for %s must be positive, using default: %d", key, defaultValue)
		value = defaultValue
	}
	return time.Duration(value) * unit
}
