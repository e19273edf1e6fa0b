package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	eventpkg "github.com/stormhead-org/community/internal/event"
	ormpkg "github.com/stormhead-org/community/internal/orm"
)

func loadEnv() {
	if os.Getenv("DEBUG") == "1" {
		godotenv.Load()
	}
}

func getenv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getenvInt64(key string, fallback int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func newLogger() *zap.Logger {
	if os.Getenv("DEBUG") == "1" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func newPostgresClient(logger *zap.Logger) (*ormpkg.PostgresClient, error) {
	return ormpkg.NewPostgresClient(
		getenv("POSTGRES_HOST", "127.0.0.1"),
		getenv("POSTGRES_PORT", "5432"),
		getenv("POSTGRES_USER", "postgres"),
		getenv("POSTGRES_PASSWORD", "postgres"),
		getenv("POSTGRES_DATABASE", "community"),
		ormpkg.PoolConfig{
			MaxOpenConns:    getenvInt("POSTGRES_MAX_OPEN_CONNS", ormpkg.DefaultPoolConfig().MaxOpenConns),
			MaxIdleConns:    getenvInt("POSTGRES_MAX_IDLE_CONNS", ormpkg.DefaultPoolConfig().MaxIdleConns),
			ConnMaxIdleTime: ormpkg.DefaultPoolConfig().ConnMaxIdleTime,
		},
	)
}

func newKafkaClient(logger *zap.Logger) (*eventpkg.KafkaClient, error) {
	return eventpkg.NewKafkaClient(
		getenv("KAFKA_HOST", "127.0.0.1"),
		getenv("KAFKA_PORT", "9092"),
		getenv("KAFKA_TOPIC", "community"),
		getenv("KAFKA_GROUP", "community"),
	)
}
