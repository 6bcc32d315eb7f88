package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config содержит все настройки Review Events Worker
type Config struct {
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Cron    CronConfig
	HTTP    HTTPConfig
}

// MongoDBConfig - настройки подключения к MongoDB
// Используется для периодической сверки агрегатов с отзывами
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - настройки подключения к Redis
// Redis хранит агрегаты рейтингов по товарам
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки Kafka consumer
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// CronConfig - расписание фоновых задач
type CronConfig struct {
	// Сверка агрегатов с MongoDB; подбирает события, потерянные между
	// сохранением отзыва и публикацией в Kafka
	Reconcile string
}

// HTTPConfig - настройки healthcheck сервера
type HTTPConfig struct {
	Port string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	minBytes, err := strconv.Atoi(getEnv("KAFKA_MIN_BYTES", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_MIN_BYTES value: %w", err)
	}

	maxBytes, err := strconv.Atoi(getEnv("KAFKA_MAX_BYTES", "1048576"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_MAX_BYTES value: %w", err)
	}

	return &Config{
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
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC", "review-added-events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "review-events-worker"),
			MinBytes: minBytes,
			MaxBytes: maxBytes,
		},
		Cron: CronConfig{
			Reconcile: getEnv("CRON_RECONCILE", "@every 1h"),
		},
		HTTP: HTTPConfig{
			Port: getEnv("HTTP_PORT", "8090"),
		},
	}, nil
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
