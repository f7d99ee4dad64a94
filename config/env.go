package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	MigrationsPath    string
	RedisURL          string
	RedisAddr         string
	RedisPassword     string
	JWTSecret         string
	JWTExpiry         string
	LogLevel          string
	LogFormat         string
	OriginURL         string
	CartTTL           time.Duration
	GiftClampQuantity bool
}

var AppConfig *Config

// LoadConfig reads .env (when present) and the process environment into AppConfig.
// It reports whether a .env file was found so the caller can log it once a logger exists.
func LoadConfig() bool {
	envFileLoaded := godotenv.Load() == nil

	cartTTL, err := time.ParseDuration(getEnv("CART_TTL", "72h"))
	if err != nil || cartTTL <= 0 {
		cartTTL = 72 * time.Hour
	}

	clamp, _ := strconv.ParseBool(getEnv("GIFT_CLAMP_QUANTITY", "false"))

	AppConfig = &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("APP_PORT", getEnv("PORT", "8082")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5454"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "free_gift_coupon"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "database/migration"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		JWTExpiry:         getEnv("JWT_EXPIRY", "24h"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", ""),
		OriginURL:         os.Getenv("ORIGIN_URL"),
		CartTTL:           cartTTL,
		GiftClampQuantity: clamp,
	}

	return envFileLoaded
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
