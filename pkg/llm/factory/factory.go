package factory

import (
	"fmt"
	"time"

	"collabnote-be/pkg/llm"
	"collabnote-be/pkg/llm/gemini"
	"collabnote-be/pkg/llm/ollama"
)

type Config struct {
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	OllamaBaseURL string
	OllamaModel   string
	Timeout       time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		baseURL := cfg.GeminiBaseURL
		if baseURL == "" {
			baseURL = "https://generativelanguage.googleapis.com"
		}
		return gemini.NewGeminiProvider(baseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.OllamaModel, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
