package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Pipeline PipelineConfig
	Ocr      OcrConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	UploadDir   string
	FigureDir   string
	MaxFileSize int64
}

type PipelineConfig struct {
	TopicName           string
	ChunkSize           int
	ChunkOverlap        int
	MaxRetries          int
	RetryBackoffBase    time.Duration
	HardTimeout         time.Duration
	SoftTimeout         time.Duration
	ValidateDoi         bool
	AffiliationDenylist []string
}

type OcrConfig struct {
	SidecarURL string
	DPI        int
	Lang       string
}

type AIConfig struct {
	EmbeddingProvider  string // "ollama" or "gemini"
	EmbeddingDimension int
	OllamaBaseURL      string
	OllamaModel        string
	GeminiApiKey       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
			FigureDir:   getEnv("FIGURE_DIR", "./uploads/figures"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE_BYTES", 50*1024*1024),
		},
		Pipeline: PipelineConfig{
			TopicName:           getEnv("PROCESS_DOCUMENT_TOPIC_NAME", "PROCESS_DOCUMENT"),
			ChunkSize:           getEnvAsInt("CHUNK_SIZE", 500),
			ChunkOverlap:        getEnvAsInt("CHUNK_OVERLAP", 50),
			MaxRetries:          getEnvAsInt("JOB_MAX_RETRIES", 3),
			RetryBackoffBase:    getEnvAsDuration("JOB_RETRY_BACKOFF_BASE", 60*time.Second),
			HardTimeout:         getEnvAsDuration("JOB_HARD_TIMEOUT", time.Hour),
			SoftTimeout:         getEnvAsDuration("JOB_SOFT_TIMEOUT", 50*time.Minute),
			ValidateDoi:         getEnvAsBool("DOI_VALIDATION_ENABLED", true),
			AffiliationDenylist: getEnvAsList("AUTHOR_AFFILIATION_DENYLIST"),
		},
		Ocr: OcrConfig{
			SidecarURL: getEnv("OCR_SIDECAR_URL", ""),
			DPI:        getEnvAsInt("OCR_DPI", 300),
			Lang:       getEnv("OCR_LANG", "eng"),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 384),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			GeminiApiKey:       getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
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

func getEnvAsList(key string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return nil
	}
	parts := strings.Split(strValue, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
