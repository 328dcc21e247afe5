package domain

import (
	"fmt"
	"time"
)

// ModelConfig describes one registered backend. Name is the unique registry
// key; ModelID is the provider-native identifier sent upstream.
//
// IsEnabled is operator intent. IsAvailable and LastHealthCheck are
// machine-owned: they reflect the most recent health probe and are written
// exclusively through the registry's health-state path.
type ModelConfig struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name" binding:"required"`
	Provider    Provider `json:"provider" yaml:"provider" mapstructure:"provider" binding:"required"`
	ModelID     string   `json:"model_id" yaml:"model_id" mapstructure:"model_id" binding:"required"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty" mapstructure:"display_name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	APIKey         string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
	APIEndpoint    string `json:"api_endpoint,omitempty" yaml:"api_endpoint,omitempty" mapstructure:"api_endpoint"`
	APIVersion     string `json:"api_version,omitempty" yaml:"api_version,omitempty" mapstructure:"api_version"`
	DeploymentName string `json:"deployment_name,omitempty" yaml:"deployment_name,omitempty" mapstructure:"deployment_name"`

	Temperature      float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
	TopP             float64 `json:"top_p" yaml:"top_p" mapstructure:"top_p"`
	FrequencyPenalty float64 `json:"frequency_penalty" yaml:"frequency_penalty" mapstructure:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty" yaml:"presence_penalty" mapstructure:"presence_penalty"`

	MaxTokens        int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" mapstructure:"max_tokens"`
	MaxContextLength int `json:"max_context_length,omitempty" yaml:"max_context_length,omitempty" mapstructure:"max_context_length"`

	SupportsStreaming       bool `json:"supports_streaming" yaml:"supports_streaming" mapstructure:"supports_streaming"`
	SupportsFunctionCalling bool `json:"supports_function_calling" yaml:"supports_function_calling" mapstructure:"supports_function_calling"`
	SupportsVision          bool `json:"supports_vision" yaml:"supports_vision" mapstructure:"supports_vision"`
	SupportsJSONMode        bool `json:"supports_json_mode" yaml:"supports_json_mode" mapstructure:"supports_json_mode"`

	CostPer1KInputTokens  float64 `json:"cost_per_1k_input_tokens" yaml:"cost_per_1k_input_tokens" mapstructure:"cost_per_1k_input_tokens"`
	CostPer1KOutputTokens float64 `json:"cost_per_1k_output_tokens" yaml:"cost_per_1k_output_tokens" mapstructure:"cost_per_1k_output_tokens"`

	IsEnabled       bool       `json:"is_enabled" yaml:"is_enabled" mapstructure:"is_enabled"`
	IsAvailable     bool       `json:"is_available" yaml:"is_available" mapstructure:"is_available"`
	LastHealthCheck *time.Time `json:"last_health_check,omitempty" yaml:"last_health_check,omitempty" mapstructure:"last_health_check"`
}

// NewModelConfig returns a ModelConfig with the documented defaults applied.
// Binding a request payload into this value preserves defaults for fields
// the caller omitted.
func NewModelConfig(name string, provider Provider, modelID string) ModelConfig {
	return ModelConfig{
		Name:        name,
		Provider:    provider,
		ModelID:     modelID,
		Temperature: 0.7,
		TopP:        1.0,
		IsEnabled:   true,
	}
}

// Validate checks the identity fields a registry entry cannot live without.
func (m *ModelConfig) Validate() error {
	if m.Name == "" {
		return BadRequestError("model name is required")
	}
	if m.ModelID == "" {
		return BadRequestError("model_id is required")
	}
	if !m.Provider.Valid() {
		return BadRequestError(fmt.Sprintf("unknown provider '%s'", m.Provider))
	}
	return nil
}

// GetDisplayName returns the configured display name, falling back to the
// registry key.
func (m *ModelConfig) GetDisplayName() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// FullName returns the provider-qualified identifier, e.g. "openai/gpt-4o".
func (m *ModelConfig) FullName() string {
	return fmt.Sprintf("%s/%s", m.Provider, m.ModelID)
}

// EstimateCost prices a hypothetical request against the per-1k-token rates.
func (m *ModelConfig) EstimateCost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1000*m.CostPer1KInputTokens +
		float64(outputTokens)/1000*m.CostPer1KOutputTokens
}

// ModelPatch is a sparse update to a ModelConfig. Nil fields are left
// untouched. Identity fields (name) are not patchable.
type ModelPatch struct {
	Provider       *Provider `json:"provider,omitempty"`
	ModelID        *string   `json:"model_id,omitempty"`
	DisplayName    *string   `json:"display_name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	APIKey         *string   `json:"api_key,omitempty"`
	APIEndpoint    *string   `json:"api_endpoint,omitempty"`
	APIVersion     *string   `json:"api_version,omitempty"`
	DeploymentName *string   `json:"deployment_name,omitempty"`

	Temperature      *float64 `json:"temperature,omitempty"`
	TopP             *float64 `json:"top_p,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`

	MaxTokens        *int `json:"max_tokens,omitempty"`
	MaxContextLength *int `json:"max_context_length,omitempty"`

	SupportsStreaming       *bool `json:"supports_streaming,omitempty"`
	SupportsFunctionCalling *bool `json:"supports_function_calling,omitempty"`
	SupportsVision          *bool `json:"supports_vision,omitempty"`
	SupportsJSONMode        *bool `json:"supports_json_mode,omitempty"`

	CostPer1KInputTokens  *float64 `json:"cost_per_1k_input_tokens,omitempty"`
	CostPer1KOutputTokens *float64 `json:"cost_per_1k_output_tokens,omitempty"`

	IsEnabled *bool `json:"is_enabled,omitempty"`
}

// Apply copies the non-nil patch fields onto m.
func (p *ModelPatch) Apply(m *ModelConfig) {
	if p.Provider != nil {
		m.Provider = *p.Provider
	}
	if p.ModelID != nil {
		m.ModelID = *p.ModelID
	}
	if p.DisplayName != nil {
		m.DisplayName = *p.DisplayName
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.APIKey != nil {
		m.APIKey = *p.APIKey
	}
	if p.APIEndpoint != nil {
		m.APIEndpoint = *p.APIEndpoint
	}
	if p.APIVersion != nil {
		m.APIVersion = *p.APIVersion
	}
	if p.DeploymentName != nil {
		m.DeploymentName = *p.DeploymentName
	}
	if p.Temperature != nil {
		m.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		m.TopP = *p.TopP
	}
	if p.FrequencyPenalty != nil {
		m.FrequencyPenalty = *p.FrequencyPenalty
	}
	if p.PresencePenalty != nil {
		m.PresencePenalty = *p.PresencePenalty
	}
	if p.MaxTokens != nil {
		m.MaxTokens = *p.MaxTokens
	}
	if p.MaxContextLength != nil {
		m.MaxContextLength = *p.MaxContextLength
	}
	if p.SupportsStreaming != nil {
		m.SupportsStreaming = *p.SupportsStreaming
	}
	if p.SupportsFunctionCalling != nil {
		m.SupportsFunctionCalling = *p.SupportsFunctionCalling
	}
	if p.SupportsVision != nil {
		m.SupportsVision = *p.SupportsVision
	}
	if p.SupportsJSONMode != nil {
		m.SupportsJSONMode = *p.SupportsJSONMode
	}
	if p.CostPer1KInputTokens != nil {
		m.CostPer1KInputTokens = *p.CostPer1KInputTokens
	}
	if p.CostPer1KOutputTokens != nil {
		m.CostPer1KOutputTokens = *p.CostPer1KOutputTokens
	}
	if p.IsEnabled != nil {
		m.IsEnabled = *p.IsEnabled
	}
}
