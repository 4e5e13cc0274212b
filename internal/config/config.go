package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	GinMode           string
	MongoURI          string
	MongoDatabase     string
	RabbitMQURI       string
	RabbitMQExchange  string
	JWTSecret         string
	LLMBaseURL        string
	LLMAPIKey         string
	LLMModel          string
	SessionTTLMinutes int
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:              getEnvOrDefault("PORT", "6660"),
		GinMode:           getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:          getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnvOrDefault("MONGO_DATABASE", "flashcard_service"),
		RabbitMQURI:       os.Getenv("RABBITMQ_URI"),
		RabbitMQExchange:  getEnvOrDefault("RABBITMQ_EXCHANGE", "study.events"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", "your-jwt-secret-key"),
		LLMBaseURL:        getEnvOrDefault("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMAPIKey:         getEnvOrDefault("LLM_API_KEY", ""),
		LLMModel:          getEnvOrDefault("LLM_MODEL", "qwen3:1.7b"),
		SessionTTLMinutes: getEnvIntOrDefault("SESSION_TTL_MINUTES", 120),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
