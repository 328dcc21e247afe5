package local

import (
	"context"
	"strings"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/httpclient"
	"github.com/promptops/model-engine/internal/probes"
)

func init() {
	probes.Register(New(domain.ProviderOllama, "/api/tags", probes.Client()))
	probes.Register(New(domain.ProviderLMStudio, "/v1/models", probes.Client()))
	probes.Register(New(domain.ProviderLlamaCpp, "/v1/models", probes.Client()))
}

// Probe pings a local runtime (Ollama, LM Studio, llama.cpp) over its
// model-listing endpoint. Local runtimes carry no credentials; only the
// endpoint is required.
type Probe struct {
	provider domain.Provider
	pingPath string
	client   httpclient.HTTPClient
}

func New(provider domain.Provider, pingPath string, client httpclient.HTTPClient) *Probe {
	return &Probe{provider: provider, pingPath: pingPath, client: client}
}

func (p *Probe) Provider() domain.Provider {
	return p.provider
}

func (p *Probe) Check(ctx context.Context, model *domain.ModelConfig) (bool, string) {
	if model.APIEndpoint == "" {
		return false, domain.StatusNoEndpoint
	}

	url := strings.TrimRight(model.APIEndpoint, "/") + p.pingPath

	err := httpclient.SendRequest(ctx, p.client, "GET", url, nil, nil, nil)
	return probes.Verdict(err)
}
