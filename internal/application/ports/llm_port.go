package ports

import (
	"context"
	"encoding/json"
)

// LLMService define el puerto de salida hacia el modelo de lenguaje.
// Cualquier adaptador (Azure OpenAI, OpenAI, Anthropic, Gemini, mock) debe implementar esta interfaz.
type LLMService interface {
	// CompleteJSON envía una instrucción de sistema y un contenido de usuario y devuelve
	// el objeto JSON que produjo el modelo, sin validar su forma.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	CompleteJSON(ctx context.Context, systemPrompt, userContent string) (json.RawMessage, error)
}
