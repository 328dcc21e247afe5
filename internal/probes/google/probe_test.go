package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheck_MissingAPIKey(t *testing.T) {
	p := New(http.DefaultClient)

	model := domain.NewModelConfig("gemini", domain.ProviderGoogle, "gemini-1.5-pro")
	healthy, status := p.Check(context.Background(), &model)

	assert.False(t, healthy)
	assert.Equal(t, "API key not configured", status)
}

func TestCheck_Healthy(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := New(srv.Client())

	model := domain.NewModelConfig("gemini", domain.ProviderGoogle, "gemini-1.5-pro")
	model.APIKey = "g-key"
	model.APIEndpoint = srv.URL

	healthy, status := p.Check(context.Background(), &model)
	assert.True(t, healthy)
	assert.Equal(t, "Healthy", status)
	assert.Equal(t, "/v1beta/models/gemini-1.5-pro:generateContent", gotPath)
	assert.Equal(t, "g-key", gotKey)
}

func TestCheck_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	p := New(srv.Client())

	model := domain.NewModelConfig("gemini", domain.ProviderGoogle, "gemini-1.5-pro")
	model.APIKey = "g-key"
	model.APIEndpoint = srv.URL

	healthy, status := p.Check(context.Background(), &model)
	assert.False(t, healthy)
	assert.Equal(t, "API error: 400", status)
}
