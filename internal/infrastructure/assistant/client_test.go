package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatUsecases "parlor/internal/application/chat/usecases"
	"parlor/internal/shared/config"
	"parlor/internal/shared/logger"
)

func TestClient_Reply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "cs_abc", req.User)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[0].Content, "Shipping times")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Two business days."}},
			},
			"usage": map[string]int64{"total_tokens": 50},
		})
	}))
	defer server.Close()

	client := NewClient(&config.AssistantConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
		CostPer1KTok:   0.01,
	}, logger.NewLogger())

	result, err := client.Reply(context.Background(), chatUsecases.ReplyRequest{
		SessionSID: "cs_abc",
		Message:    "how fast is shipping?",
		Context: []chatUsecases.Snippet{
			{Slug: "shipping-times", Title: "Shipping times", Excerpt: "Orders ship within two business days."},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Two business days.", result.Text)
	assert.Equal(t, int64(50), result.TokensUsed)
	assert.InDelta(t, 0.0005, result.Cost, 1e-9)
	assert.GreaterOrEqual(t, result.LatencyMS, int64(0))
}

func TestClient_Reply_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(&config.AssistantConfig{BaseURL: server.URL}, logger.NewLogger())

	_, err := client.Reply(context.Background(), chatUsecases.ReplyRequest{
		SessionSID: "cs_abc",
		Message:    "hello",
	})
	require.Error(t, err)
}

func TestClient_Reply_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient(&config.AssistantConfig{BaseURL: server.URL}, logger.NewLogger())

	_, err := client.Reply(context.Background(), chatUsecases.ReplyRequest{
		SessionSID: "cs_abc",
		Message:    "hello",
	})
	require.Error(t, err)
}
