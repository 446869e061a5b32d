package factory

import (
	"context"
	"fmt"

	"ai-chatlog-be/internal/pkg/logger"
	"ai-chatlog-be/pkg/llm"
	"ai-chatlog-be/pkg/llm/lmstudio"
	"ai-chatlog-be/pkg/llm/ollama"
)

// NewLLMProvider selects the generation backend at construction time.
//
// Policy: prefer the local model (Ollama daemon) when one is configured
// and reachable; otherwise degrade to the remote LM Studio completion
// endpoint with a warning rather than failing construction. Only a setup
// with neither backend configured is an error.
func NewLLMProvider(ollamaBaseURL, ollamaModel, lmStudioURL, lmStudioModel string, log logger.ILogger) (llm.LLMProvider, error) {
	if ollamaModel != "" {
		local := ollama.NewOllamaProvider(ollamaBaseURL, ollamaModel)
		if err := local.Ping(context.Background()); err == nil {
			log.Info("LLMFactory", "Using local generation backend", map[string]interface{}{
				"base_url": local.BaseURL,
				"model":    ollamaModel,
			})
			return local, nil
		} else {
			log.Warn("LLMFactory", "Local backend unavailable, falling back to LM Studio", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if lmStudioURL != "" {
		log.Info("LLMFactory", "Using remote generation backend", map[string]interface{}{
			"base_url": lmStudioURL,
		})
		return lmstudio.NewLMStudioProvider(lmStudioURL, lmStudioModel), nil
	}

	return nil, fmt.Errorf("no generation backend configured: set OLLAMA_LLM_MODEL or LM_STUDIO_URL")
}
