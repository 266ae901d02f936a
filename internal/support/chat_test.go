package support

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pathshare/pathshare/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChat(t *testing.T, handler http.Handler) *Chat {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewChat(&config.SupportConfig{
		BaseURL: server.URL,
		Model:   "gemini-2.5-flash",
		APIKey:  "test-key",
	})
}

func TestSendRelaysHistoryWithRoles(t *testing.T) {
	var got generateRequest
	chat := newTestChat(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Tap Find to search for rides."}},
				}},
			},
		})
	}))

	history := []Message{
		NewMessage(Greeting, false),
		NewMessage("How do I find a ride?", true),
		NewMessage("Use the search screen.", false),
	}
	reply, err := chat.Send(context.Background(), history, "And how do I pay?")
	require.NoError(t, err)
	assert.Equal(t, "Tap Find to search for rides.", reply)

	require.NotNil(t, got.SystemInstruction)
	require.Len(t, got.Contents, 4)
	assert.Equal(t, "model", got.Contents[0].Role)
	assert.Equal(t, "user", got.Contents[1].Role)
	assert.Equal(t, "model", got.Contents[2].Role)
	assert.Equal(t, "user", got.Contents[3].Role)
	assert.Equal(t, "And how do I pay?", got.Contents[3].Parts[0].Text)
}

func TestSendErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`},
		{name: "empty parts", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[]}}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chat := newTestChat(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			_, err := chat.Send(context.Background(), nil, "hello")
			assert.Error(t, err)
		})
	}
}

func TestNewMessageAssignsUniqueIDs(t *testing.T) {
	a := NewMessage("one", true)
	b := NewMessage("two", false)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.IsUser)
	assert.False(t, b.IsUser)
}
