// Package identity cliente administrativo del proveedor de identidad (API compatible con GoTrue).
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Inventario-ai/internal/application/ports"
)

var _ ports.IdentityAdmin = (*AdminClient)(nil)

// ErrNotConfigured IDENTITY_URL o IDENTITY_SERVICE_KEY vacíos.
var ErrNotConfigured = errors.New("identity: proveedor de identidad no configurado")

// AdminClient usa la service key; nunca se expone al cliente HTTP.
type AdminClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewAdminClient construye el cliente. Con baseURL vacío las invitaciones fallan con ErrNotConfigured.
func NewAdminClient(baseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type inviteRequest struct {
	Email string            `json:"email"`
	Data  map[string]string `json:"data"`
}

type inviteResponse struct {
	ID   string `json:"id"`
	User *struct {
		ID string `json:"id"`
	} `json:"user"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

// InviteUser POST {base}/auth/v1/invite?redirect_to=... y devuelve el id del usuario creado.
func (c *AdminClient) InviteUser(ctx context.Context, email, fullName, redirectTo string) (string, error) {
	if c.baseURL == "" || c.serviceKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(inviteRequest{Email: email, Data: map[string]string{"full_name": fullName}})
	if err != nil {
		return "", fmt.Errorf("identity: serializar request: %w", err)
	}

	endpoint := c.baseURL + "/auth/v1/invite"
	if redirectTo != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("identity: crear HTTP request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("identity: leer respuesta: %w", err)
	}

	var out inviteResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Msg
		if msg == "" {
			msg = out.ErrorDescription
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("identity: invitación rechazada (HTTP %d): %s", resp.StatusCode, msg)
	}

	id := out.ID
	if id == "" && out.User != nil {
		id = out.User.ID
	}
	if id == "" {
		return "", errors.New("identity: la respuesta no incluye el id del usuario")
	}
	return id, nil
}
