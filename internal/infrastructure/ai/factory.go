package ai

import (
	"fmt"

	"github.com/jhoicas/Inventario-ai/internal/application/ports"
	"github.com/jhoicas/Inventario-ai/pkg/config"
	"github.com/jhoicas/Inventario-ai/pkg/logger"
)

// NewService construye el adaptador del proveedor configurado envuelto en el circuit breaker.
// Con AI_PROVIDER=none devuelve (nil, nil) y el asistente trabaja solo con sus fallbacks.
func NewService(cfg config.AIConfig, log *logger.Logger) (ports.LLMService, *BreakerService, error) {
	var (
		svc ports.LLMService
		err error
	)
	switch cfg.Provider {
	case "none", "":
		return nil, nil, nil
	case "azure":
		svc, err = NewAzureService(cfg)
	case "openai":
		svc, err = NewOpenAIService(cfg)
	case "anthropic":
		svc = NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case "gemini":
		svc = NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, nil, fmt.Errorf("AI: proveedor desconocido %q", cfg.Provider)
	}
	if err != nil {
		return nil, nil, err
	}

	breaker := NewBreakerService(svc, cfg.Provider, BreakerConfig{
		Failures:    cfg.BreakerFailures,
		OpenTimeout: cfg.BreakerOpenDuration(),
	}, log)
	return breaker, breaker, nil
}
