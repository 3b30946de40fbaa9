package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ai/pkg/logger"
)

type flakyLLM struct {
	err   error
	calls int
}

func (f *flakyLLM) CompleteJSON(context.Context, string, string) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{}`), nil
}

func TestBreakerService_AbreTrasFallosConsecutivos(t *testing.T) {
	next := &flakyLLM{err: errors.New("503")}
	b := NewBreakerService(next, "test", BreakerConfig{Failures: 2, OpenTimeout: time.Minute}, logger.Nop())

	for i := 0; i < 2; i++ {
		_, err := b.CompleteJSON(context.Background(), "s", "u")
		require.Error(t, err)
	}
	assert.Equal(t, "open", b.State())

	_, err := b.CompleteJSON(context.Background(), "s", "u")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, next.calls)
}

func TestBreakerService_PasaLaRespuesta(t *testing.T) {
	b := NewBreakerService(&flakyLLM{}, "ok", BreakerConfig{}, logger.Nop())
	raw, err := b.CompleteJSON(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
	assert.Equal(t, "closed", b.State())
}
