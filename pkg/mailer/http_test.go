package mailer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealclarity/clarity/pkg/protocol"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPMailer_Send(t *testing.T) {
	var received sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	m := NewHTTPMailer(server.URL, "secret", "noreply@clarity.dev", testLogger())

	err := m.Send(context.Background(), protocol.Email{
		To:      "rep@example.com",
		Subject: "Deal moved",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "noreply@clarity.dev", received.From)
	assert.Equal(t, "rep@example.com", received.To)
	assert.Equal(t, "Deal moved", received.Subject)
}

func TestHTTPMailer_Send_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	m := NewHTTPMailer(server.URL, "bad-key", "noreply@clarity.dev", testLogger())

	err := m.Send(context.Background(), protocol.Email{To: "rep@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
