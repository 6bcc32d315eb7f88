package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки Product Catalog Service
// Включает конфигурацию HTTP сервера, PostgreSQL, MongoDB, Redis,
// Kafka, user-service и JWT
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	MongoDB     MongoDBConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	UserService UserServiceConfig
	JWT         JWTConfig
	Cache       CacheConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Используется для хранения товаров
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoDBConfig - настройки подключения к MongoDB для отзывов
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - настройки подключения к Redis для кеширования товаров
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки Kafka для отправки событий
type KafkaConfig struct {
	Brokers []string
	Topic   string // Топик для событий о новых отзывах
}

// UserServiceConfig - настройки клиента user-service
// Таймаут обязателен: вызов стоит на синхронном пути записи отзыва
type UserServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// JWTConfig - настройки для проверки JWT токенов
type JWTConfig struct {
	Secret string
}

// CacheConfig - настройки кеша товаров
type CacheConfig struct {
	ProductTTL time.Duration
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	userTimeout, err := time.ParseDuration(getEnv("USER_SERVICE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid USER_SERVICE_TIMEOUT value: %w", err)
	}

	productTTL, err := time.ParseDuration(getEnv("PRODUCT_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRODUCT_CACHE_TTL value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "product_catalog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "product_catalog"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "review-added-events"),
		},
		UserService: UserServiceConfig{
			BaseURL: getEnv("USER_SERVICE_URL", "http://localhost:8081"),
			Timeout: userTimeout,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Cache: CacheConfig{
			ProductTTL: productTTL,
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
