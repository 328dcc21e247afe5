package domain

// Provider identifies an AI backend family. The set is closed: the health
// checker only knows how to probe the providers listed here.
type Provider string

const (
	ProviderOpenAI      Provider = "openai"
	ProviderAzureOpenAI Provider = "azure_openai"
	ProviderAnthropic   Provider = "anthropic"
	ProviderGoogle      Provider = "google"
	ProviderOllama      Provider = "ollama"
	ProviderLMStudio    Provider = "lmstudio"
	ProviderLlamaCpp    Provider = "llamacpp"
	ProviderHuggingFace Provider = "huggingface"
	ProviderCohere      Provider = "cohere"
	ProviderTogether    Provider = "together"
)

// Providers returns every known provider in a stable order.
func Providers() []Provider {
	return []Provider{
		ProviderOpenAI,
		ProviderAzureOpenAI,
		ProviderAnthropic,
		ProviderGoogle,
		ProviderOllama,
		ProviderLMStudio,
		ProviderLlamaCpp,
		ProviderHuggingFace,
		ProviderCohere,
		ProviderTogether,
	}
}

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool {
	for _, known := range Providers() {
		if p == known {
			return true
		}
	}
	return false
}

// IsLocal reports whether the provider is a local runtime reached over a
// plain endpoint rather than an authenticated cloud API.
func (p Provider) IsLocal() bool {
	return p == ProviderOllama || p == ProviderLMStudio || p == ProviderLlamaCpp
}

// OperationType names a business use-case that needs a model assigned to it.
type OperationType string

const (
	OperationDefault          OperationType = "default"
	OperationPromptEnhance    OperationType = "prompt_enhancement"
	OperationPromptOptimize   OperationType = "prompt_optimization"
	OperationPromptTesting    OperationType = "prompt_testing"
	OperationPromptCombining  OperationType = "prompt_combining"
	OperationTranslation      OperationType = "translation"
	OperationTokenCalculation OperationType = "token_calculation"
	OperationGeneration       OperationType = "generation"
	OperationAnalysis         OperationType = "analysis"
	OperationCategorization   OperationType = "categorization"
	OperationSummarization    OperationType = "summarization"
)

// OperationTypes returns every operation type in a stable order.
func OperationTypes() []OperationType {
	return []OperationType{
		OperationDefault,
		OperationPromptEnhance,
		OperationPromptOptimize,
		OperationPromptTesting,
		OperationPromptCombining,
		OperationTranslation,
		OperationTokenCalculation,
		OperationGeneration,
		OperationAnalysis,
		OperationCategorization,
		OperationSummarization,
	}
}

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	for _, known := range OperationTypes() {
		if t == known {
			return true
		}
	}
	return false
}
