package ai

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var errNoJSON = errors.New("AI: no se encontró un objeto JSON en la respuesta del modelo")

// jsonBlockRe captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON devuelve el primer objeto JSON del texto aunque venga envuelto en markdown
// o acompañado de texto libre. No valida el esquema; eso lo hace la capa de aplicación.
func extractJSON(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}

	if !strings.HasPrefix(text, "{") {
		text = strings.TrimSpace(jsonBlockRe.FindString(text))
	}
	if text == "" || !json.Valid([]byte(text)) {
		return nil, errNoJSON
	}
	return json.RawMessage(text), nil
}
