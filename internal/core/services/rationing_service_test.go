package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven/mocks"
)

func explainRequest(lang string) domain.ExplainRequest {
	return domain.ExplainRequest{
		RationRequest: domain.RationRequest{
			Resources: domain.Resources{
				WaterLiters:   domain.Float64(10),
				FoodItems:     domain.String("5kg rice"),
				MedicineUnits: domain.Int(20),
			},
			People: 5,
			Days:   2,
		},
		Language: lang,
	}
}

func TestRationingService_Allocate(t *testing.T) {
	svc := NewRationingService(RationingConfig{})

	results, err := svc.Allocate(context.Background(), domain.RationRequest{
		Resources: domain.Resources{WaterLiters: domain.Float64(10)},
		People:    5,
		Days:      2,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = svc.Allocate(context.Background(), domain.RationRequest{People: 5, Days: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRationingService_Explain(t *testing.T) {
	gen := mocks.NewMockGenerator("Thinking about it\nHere is a plan:\n1. Give each person 1L of water a day\n2. Share rice fairly\n\n3. Keep medicine for the injured")
	svc := NewRationingService(RationingConfig{Generator: gen, Model: "gpt-oss:20b"})

	exp, err := svc.Explain(context.Background(), explainRequest("Español"))
	require.NoError(t, err)

	assert.True(t, exp.Generated)
	assert.Equal(t, []string{
		"1. Give each person 1L of water a day",
		"2. Share rice fairly",
		"3. Keep medicine for the injured",
	}, exp.Lines)
	require.Len(t, exp.ResourceStatus, 3)
	assert.Equal(t, "1.0L per person per day", exp.ResourceStatus[0].Details)
	assert.Equal(t, "Based on available items: 5kg rice", exp.ResourceStatus[1].Details)
	assert.Equal(t, "2.0 units per person", exp.ResourceStatus[2].Details)
	assert.Len(t, exp.Allocation, 3)

	reqs := gen.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "gpt-oss:20b", reqs[0].Model)
	assert.Equal(t, DefaultGenerationTimeout, reqs[0].Timeout)
	assert.Contains(t, reqs[0].Prompt, "available for 5 people over 2 days")
	assert.Contains(t, reqs[0].Prompt, "Water: 10 liters total\nFood items: 5kg rice\nMedicine: 20 units")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(reqs[0].Prompt), "Answer in Español."))
}

func TestRationingService_ExplainGenerationFailure(t *testing.T) {
	kinds := []domain.FailureKind{domain.FailureTimeout, domain.FailureNonZeroExit, domain.FailureException}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			gen := mocks.NewFailingGenerator(kind, "boom")
			svc := NewRationingService(RationingConfig{Generator: gen})

			exp, err := svc.Explain(context.Background(), explainRequest("English"))
			require.NoError(t, err)
			assert.False(t, exp.Generated)
			assert.Equal(t, []string{domain.MessageExplanationFailed}, exp.Lines)
			assert.Len(t, exp.ResourceStatus, 3)
		})
	}
}

func TestRationingService_ExplainEmptyOutput(t *testing.T) {
	gen := mocks.NewMockGenerator("Thinking...\nLet's see")
	svc := NewRationingService(RationingConfig{Generator: gen})

	exp, err := svc.Explain(context.Background(), explainRequest("English"))
	require.NoError(t, err)
	assert.False(t, exp.Generated)
	assert.Equal(t, []string{domain.MessageExplanationFailed}, exp.Lines)
}

func TestRationingService_ExplainPreconditions(t *testing.T) {
	gen := mocks.NewMockGenerator("1. ok")
	svc := NewRationingService(RationingConfig{Generator: gen})

	req := explainRequest("English")
	req.People = 0
	_, err := svc.Explain(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, gen.Calls())
}
