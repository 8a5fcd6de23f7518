package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Ai      AIConfig
	Routing RoutingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	Provider           string // "gemini", "ollama" or "huggingface"
	GeminiModel        string
	OllamaBaseURL      string
	OllamaModel        string
	HuggingFaceBaseURL string
	HuggingFaceModel   string
}

// RoutingConfig carries the decision constants. The 0.7 threshold and the
// 0.90/0.95 confidences are inherited literals with no derivation; they are
// kept configurable rather than computed.
type RoutingConfig struct {
	DefaultTokenLimit     int
	ContextThresholdRatio float64
	ForcedConfidence      float64
	ClassifierConfidence  float64
	// Assumed token size when a selection arrives as bare ids with no
	// descriptor records; large enough to always cross the threshold.
	UnknownSizeTokens int
	VerdictCacheTTL   int // seconds, 0 disables the cache
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			Provider:           getEnv("LLM_PROVIDER", "gemini"),
			GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_MODEL", "llama3"),
			HuggingFaceBaseURL: getEnv("HUGGINGFACE_BASE_URL", ""),
			HuggingFaceModel:   getEnv("HUGGINGFACE_MODEL", ""),
		},
		Routing: RoutingConfig{
			DefaultTokenLimit:     getEnvAsInt("DEFAULT_TOKEN_LIMIT", 980000),
			ContextThresholdRatio: getEnvAsFloat("CONTEXT_THRESHOLD_RATIO", 0.7),
			ForcedConfidence:      getEnvAsFloat("FORCED_CONFIDENCE", 0.95),
			ClassifierConfidence:  getEnvAsFloat("CLASSIFIER_CONFIDENCE", 0.90),
			UnknownSizeTokens:     getEnvAsInt("UNKNOWN_SIZE_TOKENS", 999999999),
			VerdictCacheTTL:       getEnvAsInt("VERDICT_CACHE_TTL_SECONDS", 600),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
