package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(context.Background(), Config{})

	assert.Error(t, err)
}

func TestNewLLMService_DefaultModel(t *testing.T) {
	svc, err := NewLLMService(context.Background(), Config{APIKey: "AIza-test"})

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func newFakeGemini(t *testing.T, body *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, ":generateContent"):
			if body != nil {
				require.NoError(t, json.NewDecoder(r.Body).Decode(body))
			}
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"gemini answer"}]}}]}`))
		case strings.HasSuffix(r.URL.Path, "/models/gemini-test"):
			_, _ = w.Write([]byte(`{"name":"models/gemini-test"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found","status":"NOT_FOUND"}}`))
		}
	}))
}

func TestLLMService_Generate(t *testing.T) {
	var body map[string]any
	server := newFakeGemini(t, &body)
	defer server.Close()

	svc, err := NewLLMService(context.Background(), Config{APIKey: "AIza-test", BaseURL: server.URL, Model: "gemini-test"})
	require.NoError(t, err)

	text, err := svc.Generate(context.Background(), "describe", driven.GenerateOptions{SystemPrompt: "be brief"})

	require.NoError(t, err)
	assert.Equal(t, "gemini answer", text)
	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "contents")
}

func TestLLMService_Ping(t *testing.T) {
	server := newFakeGemini(t, nil)
	defer server.Close()

	known, err := NewLLMService(context.Background(), Config{APIKey: "AIza-test", BaseURL: server.URL, Model: "gemini-test"})
	require.NoError(t, err)
	unknown, err := NewLLMService(context.Background(), Config{APIKey: "AIza-test", BaseURL: server.URL, Model: "missing"})
	require.NoError(t, err)

	assert.NoError(t, known.Ping(context.Background()))
	assert.Error(t, unknown.Ping(context.Background()))
}
