package ai

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jhoicas/Inventario-ai/internal/application/ports"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/observability"
	"github.com/jhoicas/Inventario-ai/pkg/logger"
)

var _ ports.LLMService = (*BreakerService)(nil)

// BreakerConfig umbral de fallos consecutivos y tiempo en estado abierto.
type BreakerConfig struct {
	Failures    int
	OpenTimeout time.Duration
}

// BreakerService corta las llamadas al modelo tras fallos consecutivos. Con el circuito
// abierto CompleteJSON falla de inmediato y el asistente responde con su fallback.
type BreakerService struct {
	next     ports.LLMService
	cb       *gobreaker.CircuitBreaker
	provider string
}

// NewBreakerService envuelve next con un circuit breaker nombrado por proveedor.
func NewBreakerService(next ports.LLMService, provider string, cfg BreakerConfig, log *logger.Logger) *BreakerService {
	if cfg.Failures <= 0 {
		cfg.Failures = 5
	}
	name := "llm_" + provider
	observability.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.Failures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("cambio de estado del circuit breaker")
			var stateVal float64
			switch to {
			case gobreaker.StateClosed:
				stateVal = 0
			case gobreaker.StateHalfOpen:
				stateVal = 1
			case gobreaker.StateOpen:
				stateVal = 2
			}
			observability.CircuitBreakerState.WithLabelValues(name).Set(stateVal)
		},
	})
	return &BreakerService{next: next, cb: cb, provider: provider}
}

func (b *BreakerService) CompleteJSON(ctx context.Context, systemPrompt, userContent string) (json.RawMessage, error) {
	start := time.Now()
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.CompleteJSON(ctx, systemPrompt, userContent)
	})
	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.LLMCallDuration.WithLabelValues(b.provider, status).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return out.(json.RawMessage), nil
}

// State estado actual del circuito (para /health).
func (b *BreakerService) State() string {
	return b.cb.State().String()
}
