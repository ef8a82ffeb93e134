package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port        string
	BindAddress string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost string
	RedisPort string

	RateLimitMax    int
	RateLimitWindow time.Duration

	AuditLogPath   string
	AllowedOrigins []string

	Limits Limits
}

// Limits holds the per-field validation bounds shared by every resource.
type Limits struct {
	MaxTitleLength       int
	MaxDescriptionLength int
	MaxQuestionLength    int
	MaxAnswerLength      int
	MaxURLLength         int
	MaxCategoryLength    int
	MaxTagsLength        int
	MaxTypeLength        int
	DefaultTimeLimit     int
	MaxTimeLimit         int
}

func Load() *Config {
	// A missing .env file is fine; real environments set variables directly.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		BindAddress: getEnv("BIND_ADDRESS", "localhost"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "quizapi"),
		DBPassword:  getEnv("DB_PASSWORD", "quizapi123"),
		DBName:      getEnv("DB_NAME", "quiz_database"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		RedisHost:   getEnv("REDIS_HOST", "localhost"),
		RedisPort:   getEnv("REDIS_PORT", "6379"),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 3600)) * time.Second,

		AuditLogPath: getEnv("AUDIT_LOG_PATH", ""),
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		},

		Limits: DefaultLimits(),
	}
}

func DefaultLimits() Limits {
	return Limits{
		MaxTitleLength:       255,
		MaxDescriptionLength: 1000,
		MaxQuestionLength:    500,
		MaxAnswerLength:      500,
		MaxURLLength:         500,
		MaxCategoryLength:    100,
		MaxTagsLength:        500,
		MaxTypeLength:        50,
		DefaultTimeLimit:     30,
		MaxTimeLimit:         300,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func InitRedis(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
	})
}
