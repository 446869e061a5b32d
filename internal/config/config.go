package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Topics   TopicConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type TopicConfig struct {
	AnalyzeConversation string
}

type AIConfig struct {
	// Embedding backend (Ollama-compatible API)
	EmbeddingBaseURL string
	EmbeddingModel   string

	// Local generation backend (Ollama daemon)
	OllamaBaseURL  string
	OllamaLLMModel string

	// Remote fallback (LM Studio / OpenAI-compatible completions API)
	LMStudioURL   string
	LMStudioModel string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Topics: TopicConfig{
			AnalyzeConversation: getEnv("ANALYZE_CONVERSATION_TOPIC_NAME", "ANALYZE_CONVERSATION"),
		},
		Ai: AIConfig{
			EmbeddingBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaLLMModel:   getEnv("OLLAMA_LLM_MODEL", ""),
			LMStudioURL:      getEnv("LM_STUDIO_URL", "http://localhost:1234"),
			LMStudioModel:    getEnv("LM_STUDIO_MODEL", "local-model"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
