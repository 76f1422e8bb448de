package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	Ai    AIConfig
	News  NewsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JWTSecret          string
	UsersFilePath      string
}

type StoreConfig struct {
	// Dir holds one <user>_sessions.json per user.
	Dir string
}

type AIConfig struct {
	Provider      string // "ollama" or "qwen"
	Model         string
	OllamaBaseURL string
	QwenBaseURL   string
	QwenAPIKey    string
	NamerTimeout  time.Duration
}

type NewsConfig struct {
	CacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"),
			JWTSecret:          getEnv("JWT_SECRET", "default_secret"),
			UsersFilePath:      getEnv("USERS_FILE_PATH", "users.json"),
		},
		Store: StoreConfig{
			Dir: getEnv("SESSIONS_DIR", "sessions"),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "qwen"),
			Model:         getEnv("LLM_MODEL", "qwen-vl-max"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			QwenBaseURL:   getEnv("QWEN_BASE_URL", "https://dashscope.aliyuncs.com/compatible-mode/v1"),
			QwenAPIKey:    getEnv("QWEN_API_KEY", ""),
			NamerTimeout:  getEnvAsDuration("NAMER_TIMEOUT", 5*time.Second),
		},
		News: NewsConfig{
			CacheTTL: getEnvAsDuration("NEWS_CACHE_TTL", 10*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
