package config

import (
	"os"
	"strconv"
)

type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	Port string

	JWTSecret     string
	TokenLifetime int // hours

	RabbitMQURL   string
	OrderExchange string
	OrderQueue    string

	OrderWebhookURL string

	S3Bucket string

	FrontendURL string
	FromEmail   string
	SMTPAddress string
}

func Load() *Config {
	return &Config{
		DBUser:          getEnv("DB_USER", "root"),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBName:          getEnv("DB_NAME", "ecommerce"),
		Port:            getEnv("PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenLifetime:   getEnvInt("TOKEN_LIFETIME_HOURS", 24),
		RabbitMQURL:     getEnv("RABBITMQ_URL", ""),
		OrderExchange:   getEnv("ORDER_EXCHANGE", "orders_exchange"),
		OrderQueue:      getEnv("ORDER_QUEUE", "orders_queue"),
		OrderWebhookURL: getEnv("ORDER_WEBHOOK_URL", ""),
		S3Bucket:        getEnv("S3_BUCKET", "ecommerce-product-images"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:4200"),
		FromEmail:       getEnv("FROM_EMAIL", ""),
		SMTPAddress:     getEnv("SMTP_ADDRESS", ""),
	}
}

func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
