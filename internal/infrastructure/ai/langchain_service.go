package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/jhoicas/Inventario-ai/internal/application/ports"
	"github.com/jhoicas/Inventario-ai/pkg/config"
)

var _ ports.LLMService = (*LangChainService)(nil)

// LangChainService adaptador sobre langchaingo para Azure OpenAI y OpenAI.
// Pide modo JSON y temperatura baja; una sola llamada por operación.
type LangChainService struct {
	model llms.Model
}

// NewLangChainService envuelve un modelo ya construido (los tests inyectan uno falso).
func NewLangChainService(model llms.Model) *LangChainService {
	return &LangChainService{model: model}
}

// NewAzureService usa el deployment de Azure OpenAI como nombre de modelo.
func NewAzureService(cfg config.AIConfig) (*LangChainService, error) {
	if cfg.AzureEndpoint == "" || cfg.AzureAPIKey == "" || cfg.AzureDeployment == "" {
		return nil, fmt.Errorf("AI: AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY y AZURE_OPENAI_DEPLOYMENT son obligatorios")
	}
	llm, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(cfg.AzureEndpoint),
		openai.WithToken(cfg.AzureAPIKey),
		openai.WithModel(cfg.AzureDeployment),
		openai.WithAPIVersion(cfg.AzureAPIVersion),
	)
	if err != nil {
		return nil, fmt.Errorf("AI: crear cliente Azure OpenAI: %w", err)
	}
	return NewLangChainService(llm), nil
}

// NewOpenAIService cliente para la API pública de OpenAI.
func NewOpenAIService(cfg config.AIConfig) (*LangChainService, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("AI: OPENAI_API_KEY no configurado")
	}
	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.OpenAIModel),
	)
	if err != nil {
		return nil, fmt.Errorf("AI: crear cliente OpenAI: %w", err)
	}
	return NewLangChainService(llm), nil
}

// CompleteJSON envía el prompt de sistema y el contenido del usuario y devuelve el objeto JSON de la respuesta.
func (s *LangChainService) CompleteJSON(ctx context.Context, systemPrompt, userContent string) (json.RawMessage, error) {
	resp, err := s.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, userContent),
		},
		llms.WithTemperature(0.1),
		llms.WithJSONMode(),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada al modelo fallida: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("AI: el modelo devolvió respuesta vacía")
	}
	return extractJSON(resp.Choices[0].Content)
}
