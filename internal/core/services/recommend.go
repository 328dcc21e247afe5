package services

import (
	"fmt"
	"sort"

	"github.com/promptops/model-engine/internal/core/domain"
)

const maxRecommendations = 5

// capabilitySet names the capabilities an operation benefits from.
type capabilitySet struct {
	streaming       bool
	functionCalling bool
	vision          bool
	jsonMode        bool
}

// operationNeeds maps each operation to the capabilities worth rewarding.
var operationNeeds = map[domain.OperationType]capabilitySet{
	domain.OperationGeneration:      {streaming: true},
	domain.OperationPromptEnhance:   {streaming: true},
	domain.OperationPromptOptimize:  {streaming: true},
	domain.OperationPromptCombining: {functionCalling: true},
	domain.OperationAnalysis:        {jsonMode: true, functionCalling: true},
	domain.OperationCategorization:  {jsonMode: true},
	domain.OperationSummarization:   {streaming: true},
}

// priceWeights biases scoring by operation: cost-sensitive bulk operations
// weigh price heavily, quality-sensitive ones barely at all.
var priceWeights = map[domain.OperationType]float64{
	domain.OperationPromptTesting:    10.0,
	domain.OperationTokenCalculation: 10.0,
	domain.OperationCategorization:   4.0,
	domain.OperationPromptEnhance:    0.5,
	domain.OperationPromptOptimize:   0.5,
	domain.OperationGeneration:       0.5,
}

const defaultPriceWeight = 2.0

// Recommender scores available models for an operation:
//
//	score = capabilityFit(model, op) - priceWeight(op) * (costIn + costOut)
//
// The formula is a conforming default; the contract it must keep is that a
// cheaper model outranks a pricier one for cost-sensitive operations.
type Recommender struct {
	registry *Registry
}

func NewRecommender(registry *Registry) *Recommender {
	return &Recommender{registry: registry}
}

// Recommendations returns up to five candidates for the operation, highest
// score first. Only enabled, currently-available models are considered.
func (r *Recommender) Recommendations(op domain.OperationType) []domain.Recommendation {
	needs := operationNeeds[op]
	weight := priceWeight(op)

	var recs []domain.Recommendation
	for _, m := range r.registry.Models() {
		if !m.IsEnabled || !m.IsAvailable {
			continue
		}

		fit := capabilityFit(&m, needs)
		pricePenalty := weight * (m.CostPer1KInputTokens + m.CostPer1KOutputTokens)
		recs = append(recs, domain.Recommendation{
			Model:  m,
			Score:  fit - pricePenalty,
			Reason: reason(op, weight, fit, pricePenalty),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Model.Name < recs[j].Model.Name
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func priceWeight(op domain.OperationType) float64 {
	if w, ok := priceWeights[op]; ok {
		return w
	}
	return defaultPriceWeight
}

// capabilityFit starts at 1.0 and rewards each capability the operation
// benefits from that the model actually has.
func capabilityFit(m *domain.ModelConfig, needs capabilitySet) float64 {
	fit := 1.0
	if needs.streaming && m.SupportsStreaming {
		fit += 0.5
	}
	if needs.functionCalling && m.SupportsFunctionCalling {
		fit += 0.5
	}
	if needs.vision && m.SupportsVision {
		fit += 0.5
	}
	if needs.jsonMode && m.SupportsJSONMode {
		fit += 0.5
	}
	return fit
}

// reason summarizes the dominant scoring factor as a short human string.
func reason(op domain.OperationType, weight, fit, pricePenalty float64) string {
	bonus := fit - 1.0
	switch {
	case bonus > 0 && bonus >= pricePenalty:
		return fmt.Sprintf("Strong capability match for %s", op)
	case weight >= 8:
		return fmt.Sprintf("Low cost for %s workloads", op)
	default:
		return "Balanced cost and capability"
	}
}
