package google

import (
	"context"
	"fmt"
	"strings"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/httpclient"
	"github.com/promptops/model-engine/internal/probes"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

func init() {
	probes.Register(New(probes.Client()))
}

// Probe checks a Google Gemini backend with a minimal generateContent call.
type Probe struct {
	client httpclient.HTTPClient
}

func New(client httpclient.HTTPClient) *Probe {
	return &Probe{client: client}
}

func (p *Probe) Provider() domain.Provider {
	return domain.ProviderGoogle
}

func (p *Probe) Check(ctx context.Context, model *domain.ModelConfig) (bool, string) {
	if model.APIKey == "" {
		return false, domain.StatusNoAPIKey
	}

	base := model.APIEndpoint
	if base == "" {
		base = defaultBaseURL
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(base, "/"), model.ModelID, model.APIKey)

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": "ping"}}},
		},
		"generationConfig": map[string]int{"maxOutputTokens": 1},
	}

	err := httpclient.SendRequest(ctx, p.client, "POST", url, nil, body, nil)
	return probes.Verdict(err)
}
