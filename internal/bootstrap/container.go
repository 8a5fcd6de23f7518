package bootstrap

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"ai-moderouter-be/internal/config"
	"ai-moderouter-be/internal/controller"
	"ai-moderouter-be/internal/pkg/logger"
	"ai-moderouter-be/internal/repository/memory"
	"ai-moderouter-be/internal/service"
	"ai-moderouter-be/pkg/classifier"
	"ai-moderouter-be/pkg/llm"
	"ai-moderouter-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	DetectController controller.IDetectController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

// NewContainer wires the full dependency graph. The LLM provider is built
// once here and injected; a failed initialization is not fatal, the
// classifier then serves deterministic fallback verdicts only.
func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	provider := initLLMProvider(cfg)

	return NewContainerWithProvider(cfg, sysLogger, provider)
}

// NewContainerWithProvider allows tests to inject a scripted backend.
func NewContainerWithProvider(cfg *config.Config, sysLogger logger.ILogger, provider llm.LLMProvider) *Container {
	classifierLogger := initClassifierLogger()
	modeClassifier := classifier.NewClassifier(provider, classifierLogger)

	var verdicts *memory.VerdictRepository
	if cfg.Routing.VerdictCacheTTL > 0 {
		verdicts = memory.NewVerdictRepository(time.Duration(cfg.Routing.VerdictCacheTTL) * time.Second)
	}

	detectorService := service.NewDetectorService(modeClassifier, verdicts, sysLogger, cfg.Routing)
	detectController := controller.NewDetectController(detectorService)

	return &Container{
		DetectController: detectController,
		Logger:           sysLogger,
	}
}

func initLLMProvider(cfg *config.Config) llm.LLMProvider {
	model := cfg.Ai.GeminiModel
	baseURL := ""
	apiKey := cfg.Keys.GoogleGemini

	switch cfg.Ai.Provider {
	case "ollama":
		model = cfg.Ai.OllamaModel
		baseURL = cfg.Ai.OllamaBaseURL
		apiKey = ""
	case "huggingface":
		model = cfg.Ai.HuggingFaceModel
		baseURL = cfg.Ai.HuggingFaceBaseURL
		apiKey = cfg.Keys.HuggingFace
	}

	provider, err := factory.NewLLMProvider(cfg.Ai.Provider, model, baseURL, apiKey)
	if err != nil {
		log.Printf("[WARN] LLM provider unavailable, routing uses deterministic fallbacks: %v", err)
		return nil
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, model)
	return provider
}

func initClassifierLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "classifier.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[CLASSIFIER] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
