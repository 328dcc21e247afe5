package azure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheck_MissingCredentials(t *testing.T) {
	p := New(http.DefaultClient)

	// Key without endpoint
	model := domain.NewModelConfig("az", domain.ProviderAzureOpenAI, "gpt-4")
	model.APIKey = "key"
	healthy, status := p.Check(context.Background(), &model)
	assert.False(t, healthy)
	assert.Equal(t, "API key or endpoint not configured", status)

	// Endpoint without key
	model = domain.NewModelConfig("az", domain.ProviderAzureOpenAI, "gpt-4")
	model.APIEndpoint = "https://example.openai.azure.com"
	healthy, status = p.Check(context.Background(), &model)
	assert.False(t, healthy)
	assert.Equal(t, "API key or endpoint not configured", status)
}

func TestCheck_DeploymentRouting(t *testing.T) {
	var gotURL, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotKey = r.Header.Get("api-key")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := New(srv.Client())

	model := domain.NewModelConfig("az", domain.ProviderAzureOpenAI, "gpt-4")
	model.APIKey = "azure-key"
	model.APIEndpoint = srv.URL
	model.DeploymentName = "prod-gpt4"
	model.APIVersion = "2024-06-01"

	healthy, status := p.Check(context.Background(), &model)
	assert.True(t, healthy)
	assert.Equal(t, "Healthy", status)
	assert.Equal(t, "/openai/deployments/prod-gpt4/chat/completions?api-version=2024-06-01", gotURL)
	assert.Equal(t, "azure-key", gotKey)
}

func TestCheck_DefaultsFillDeploymentAndVersion(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := New(srv.Client())

	// No deployment name: the model ID doubles as the deployment
	model := domain.NewModelConfig("az", domain.ProviderAzureOpenAI, "gpt-4")
	model.APIKey = "azure-key"
	model.APIEndpoint = srv.URL

	healthy, _ := p.Check(context.Background(), &model)
	assert.True(t, healthy)
	assert.Equal(t, "/openai/deployments/gpt-4/chat/completions?api-version=2024-02-01", gotURL)
}

func TestCheck_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	p := New(srv.Client())

	model := domain.NewModelConfig("az", domain.ProviderAzureOpenAI, "gpt-4")
	model.APIKey = "azure-key"
	model.APIEndpoint = srv.URL

	healthy, status := p.Check(context.Background(), &model)
	assert.False(t, healthy)
	assert.Equal(t, "API error: 403", status)
}
