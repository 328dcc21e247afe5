package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/httpclient"
	"github.com/promptops/model-engine/internal/probes"
)

const defaultAPIVersion = "2024-02-01"

func init() {
	probes.Register(New(probes.Client()))
}

// Probe checks an Azure OpenAI deployment. Azure routes by deployment name
// and versioned endpoint rather than a bare model ID, so both the key and
// the resource endpoint are mandatory.
type Probe struct {
	client httpclient.HTTPClient
}

func New(client httpclient.HTTPClient) *Probe {
	return &Probe{client: client}
}

func (p *Probe) Provider() domain.Provider {
	return domain.ProviderAzureOpenAI
}

func (p *Probe) Check(ctx context.Context, model *domain.ModelConfig) (bool, string) {
	if model.APIKey == "" || model.APIEndpoint == "" {
		return false, domain.StatusNoAPIKeyOrEndpoint
	}

	deployment := model.DeploymentName
	if deployment == "" {
		deployment = model.ModelID
	}
	version := model.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(model.APIEndpoint, "/"), deployment, version)

	body := map[string]interface{}{
		"messages":   []map[string]string{{"role": "user", "content": "ping"}},
		"max_tokens": 1,
	}
	headers := map[string]string{
		"api-key": model.APIKey,
	}

	err := httpclient.SendRequest(ctx, p.client, "POST", url, headers, body, nil)
	return probes.Verdict(err)
}
