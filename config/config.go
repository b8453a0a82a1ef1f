package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Env              string
	Port             string
	DBURL            string
	JWTSecret        string
	JWTIssuer        string
	JWTAudience      string
	TokenExpiryMin   int
	StrictTokenCheck bool
	MigrationsPath   string
}

func Load() *Config {
	// Development convenience; production environments set real variables.
	_ = godotenv.Load()

	return &Config{
		Env:              getEnv("ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DBURL:            mustGetEnv("DB_URL"),
		JWTSecret:        mustGetEnv("JWT_SECRET"),
		JWTIssuer:        getEnv("JWT_ISSUER", "EasyLogin"),
		JWTAudience:      getEnv("JWT_AUDIENCE", "EasyLogin"),
		TokenExpiryMin:   getEnvAsInt("TOKEN_EXPIRY_MINUTES", 60),
		StrictTokenCheck: getEnvAsBool("STRICT_TOKEN_CHECK", false),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "migrations"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	logrus.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		logrus.Warnf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		logrus.Warnf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
