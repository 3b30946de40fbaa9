// Package assistant implementa las funciones asistidas por IA: chat sobre los datos,
// búsqueda en lenguaje natural, sugerencias de reposición y borradores a proveedores.
//
// Ninguna operación propaga fallos del modelo: ante error de red, timeout o salida
// que no cumple el esquema se responde con el resultado determinista (source "fallback").
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-ai/internal/application/ports"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
	"github.com/jhoicas/Inventario-ai/pkg/logger"
)

// Nombres de función para logs y métricas.
const (
	featureChat    = "chat_data"
	featureNL      = "nl_search"
	featureRestock = "restock"
	featureDrafts  = "supplier_drafts"
)

var errLLMDisabled = errors.New("modelo de lenguaje no configurado")

// Service orquesta el modelo, el store y las reglas deterministas.
type Service struct {
	llm        ports.LLMService
	items      repository.ItemRepository
	categories repository.CategoryRepository
	metrics    ports.AIMetrics
	log        *logger.Logger
	timeout    time.Duration
}

// NewService llm puede ser nil: todas las funciones responden con su fallback.
func NewService(
	llm ports.LLMService,
	items repository.ItemRepository,
	categories repository.CategoryRepository,
	metrics ports.AIMetrics,
	log *logger.Logger,
	timeout time.Duration,
) *Service {
	if metrics == nil {
		metrics = ports.NopAIMetrics{}
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Service{
		llm:        llm,
		items:      items,
		categories: categories,
		metrics:    metrics,
		log:        log,
		timeout:    timeout,
	}
}

// complete hace una sola llamada al modelo (sin reintentos) y decodifica+valida la salida en dst.
func (s *Service) complete(ctx context.Context, systemPrompt string, userContent interface{}, dst interface{}) error {
	if s.llm == nil {
		return errLLMDisabled
	}
	var content string
	switch v := userContent.(type) {
	case string:
		content = v
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("serializar contenido: %w", err)
		}
		content = string(b)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.llm.CompleteJSON(ctx, systemPrompt, content)
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return validation.DecodeJSON(raw, dst)
}

func (s *Service) fellBack(feature string, err error) {
	s.log.Warn().Err(err).Str("feature", feature).Msg("salida del modelo descartada, se usa fallback")
	s.metrics.ObserveAIResult(feature, string(filter.SourceFallback))
}

func (s *Service) usedAI(feature string) {
	s.metrics.ObserveAIResult(feature, string(filter.SourceAI))
}
