package anthropic

import (
	"context"
	"strings"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/httpclient"
	"github.com/promptops/model-engine/internal/probes"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

func init() {
	probes.Register(New(probes.Client()))
}

// Probe checks an Anthropic backend with a one-token messages request.
type Probe struct {
	client httpclient.HTTPClient
}

func New(client httpclient.HTTPClient) *Probe {
	return &Probe{client: client}
}

func (p *Probe) Provider() domain.Provider {
	return domain.ProviderAnthropic
}

func (p *Probe) Check(ctx context.Context, model *domain.ModelConfig) (bool, string) {
	if model.APIKey == "" {
		return false, domain.StatusNoAPIKey
	}

	base := model.APIEndpoint
	if base == "" {
		base = defaultBaseURL
	}
	url := strings.TrimRight(base, "/") + "/v1/messages"

	body := map[string]interface{}{
		"model":      model.ModelID,
		"max_tokens": 1,
		"messages":   []map[string]string{{"role": "user", "content": "ping"}},
	}
	headers := map[string]string{
		"x-api-key":         model.APIKey,
		"anthropic-version": anthropicVersion,
	}

	err := httpclient.SendRequest(ctx, p.client, "POST", url, headers, body, nil)
	return probes.Verdict(err)
}
