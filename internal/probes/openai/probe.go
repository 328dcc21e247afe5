package openai

import (
	"context"
	"strings"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/httpclient"
	"github.com/promptops/model-engine/internal/probes"
)

const defaultBaseURL = "https://api.openai.com/v1"

func init() {
	probes.Register(New(probes.Client()))
}

// Probe checks an OpenAI-compatible backend with a one-token chat
// completion, the cheapest request that exercises both auth and the model.
type Probe struct {
	client httpclient.HTTPClient
}

func New(client httpclient.HTTPClient) *Probe {
	return &Probe{client: client}
}

func (p *Probe) Provider() domain.Provider {
	return domain.ProviderOpenAI
}

func (p *Probe) Check(ctx context.Context, model *domain.ModelConfig) (bool, string) {
	if model.APIKey == "" {
		return false, domain.StatusNoAPIKey
	}

	base := model.APIEndpoint
	if base == "" {
		base = defaultBaseURL
	}
	url := strings.TrimRight(base, "/") + "/chat/completions"

	body := map[string]interface{}{
		"model":      model.ModelID,
		"messages":   []map[string]string{{"role": "user", "content": "ping"}},
		"max_tokens": 1,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + model.APIKey,
	}

	err := httpclient.SendRequest(ctx, p.client, "POST", url, headers, body, nil)
	return probes.Verdict(err)
}
