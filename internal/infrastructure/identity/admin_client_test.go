package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminClient_InviteUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/invite", r.URL.Path)
		assert.Equal(t, "https://app.example.com/login", r.URL.Query().Get("redirect_to"))
		assert.Equal(t, "svc", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer svc", r.Header.Get("Authorization"))

		var body inviteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new@example.com", body.Email)
		assert.Equal(t, "Ana", body.Data["full_name"])

		_, _ = w.Write([]byte(`{"id":"7f0c8a52-5d1e-4b7a-9c0e-2d9f1a3b4c5d","email":"new@example.com"}`))
	}))
	defer srv.Close()

	id, err := NewAdminClient(srv.URL, "svc").InviteUser(context.Background(), "new@example.com", "Ana", "https://app.example.com/login")
	require.NoError(t, err)
	assert.Equal(t, "7f0c8a52-5d1e-4b7a-9c0e-2d9f1a3b4c5d", id)
}

func TestAdminClient_Rechazo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"msg":"A user with this email address has already been registered"}`))
	}))
	defer srv.Close()

	_, err := NewAdminClient(srv.URL, "svc").InviteUser(context.Background(), "dup@example.com", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been registered")
}

func TestAdminClient_SinConfigurar(t *testing.T) {
	_, err := NewAdminClient("", "").InviteUser(context.Background(), "a@b.co", "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
