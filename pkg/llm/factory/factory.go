package factory

import (
	"fmt"

	"ai-moderouter-be/pkg/llm"
	"ai-moderouter-be/pkg/llm/gemini"
	"ai-moderouter-be/pkg/llm/huggingface"
	"ai-moderouter-be/pkg/llm/ollama"
)

// NewLLMProvider builds the text-completion backend selected by configuration.
// A missing credential is an error here; callers decide whether that is fatal
// or whether to run in fallback-only mode.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		if apiKey == "" {
			return nil, fmt.Errorf("huggingface provider requires an API key")
		}
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
