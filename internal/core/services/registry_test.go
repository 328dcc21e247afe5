package services

import (
	"testing"
	"time"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"))

	m, ok := r.Model("gpt4")
	assert.True(t, ok)
	assert.Equal(t, "gpt4", m.Name)
	// No probe has run yet
	assert.False(t, m.IsAvailable)
	assert.Nil(t, m.LastHealthCheck)

	_, ok = r.Model("missing")
	assert.False(t, ok)
}

func TestRegistry_AddHonorsImportedAvailability(t *testing.T) {
	r := NewRegistry()

	checked := time.Now().Add(-time.Minute)
	m := domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4")
	m.IsAvailable = true
	m.LastHealthCheck = &checked
	r.AddModel(m)

	got, ok := r.Model("gpt4")
	assert.True(t, ok)
	assert.True(t, got.IsAvailable)
	assert.NotNil(t, got.LastHealthCheck)
	assert.True(t, got.LastHealthCheck.Equal(checked))
}

func TestRegistry_ModelsSortedByName(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("charlie", domain.ProviderOpenAI, "c"))
	r.AddModel(domain.NewModelConfig("alpha", domain.ProviderOpenAI, "a"))
	r.AddModel(domain.NewModelConfig("bravo", domain.ProviderOpenAI, "b"))

	models := r.Models()
	assert.Len(t, models, 3)
	assert.Equal(t, "alpha", models[0].Name)
	assert.Equal(t, "bravo", models[1].Name)
	assert.Equal(t, "charlie", models[2].Name)
}

func TestRegistry_SetHealth(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"))

	at := time.Now()
	assert.True(t, r.SetHealth("gpt4", true, at))

	m, _ := r.Model("gpt4")
	assert.True(t, m.IsAvailable)
	assert.True(t, m.LastHealthCheck.Equal(at))

	// Unknown model is reported, not silently recorded
	assert.False(t, r.SetHealth("missing", true, at))
}

func TestRegistry_RepeatedUnhealthyProbesAdvanceLastCheck(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"))

	first := time.Now()
	assert.True(t, r.SetHealth("gpt4", false, first))

	second := first.Add(time.Minute)
	assert.True(t, r.SetHealth("gpt4", false, second))

	m, _ := r.Model("gpt4")
	assert.False(t, m.IsAvailable)
	assert.True(t, m.LastHealthCheck.Equal(second))
}

func TestRegistry_RemoveModel_ScrubsOperations(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("primary", domain.ProviderOpenAI, "p"))
	r.AddModel(domain.NewModelConfig("backup", domain.ProviderOpenAI, "b"))

	r.SetOperation(domain.OperationGeneration, domain.OperationConfig{
		PrimaryModel:   "primary",
		FallbackModels: []string{"backup", "primary", "backup"},
		IsEnabled:      true,
	})

	assert.NoError(t, r.RemoveModel("primary"))

	cfg, ok := r.Operation(domain.OperationGeneration)
	assert.True(t, ok)
	assert.Equal(t, "", cfg.PrimaryModel)
	// All occurrences stripped, rule itself kept
	assert.Equal(t, []string{"backup", "backup"}, cfg.FallbackModels)

	_, ok = r.Model("primary")
	assert.False(t, ok)

	err := r.RemoveModel("primary")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegistry_UpdateModel(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"))

	temp := 0.1
	updated, err := r.UpdateModel("gpt4", domain.ModelPatch{Temperature: &temp})
	assert.NoError(t, err)
	assert.Equal(t, 0.1, updated.Temperature)

	stored, _ := r.Model("gpt4")
	assert.Equal(t, 0.1, stored.Temperature)

	_, err = r.UpdateModel("missing", domain.ModelPatch{})
	assert.Error(t, err)
}

func TestRegistry_ReadsReturnCopies(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"))

	m, _ := r.Model("gpt4")
	m.ModelID = "mutated"

	stored, _ := r.Model("gpt4")
	assert.Equal(t, "gpt-4", stored.ModelID)
}
