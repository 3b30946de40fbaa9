package ports

// AIMetrics registra el resultado de cada función asistida por IA (source "ai" o "fallback").
type AIMetrics interface {
	ObserveAIResult(feature, source string)
}

// NopAIMetrics no registra nada.
type NopAIMetrics struct{}

func (NopAIMetrics) ObserveAIResult(string, string) {}
