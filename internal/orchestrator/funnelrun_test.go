package orchestrator

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
)

func TestRunFunnelDigitalProduct(t *testing.T) {
	h := newHarness(t)

	result, err := h.orch.RunFunnel(context.Background(), "digital_product", "help local dentists sell online")
	require.NoError(t, err)

	require.Len(t, result.Steps, 4)
	assert.Equal(t, "find_product_idea", result.Steps[0].Capability)
	assert.Equal(t, "generate_content", result.Steps[1].Capability)
	assert.Equal(t, "generate_landing_page", result.Steps[2].Capability)
	assert.Equal(t, "generate_social_posts", result.Steps[3].Capability)
	for i, step := range result.Steps {
		assert.Equal(t, i, step.StepIndex)
	}

	assert.NotEmpty(t, result.Summary)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "Local SEO Playbook", result.FinalOutput["productName"])
	assert.Equal(t, float64(49), result.FinalOutput["priceUSD"])
}

func TestRunFunnelStructuralIdempotence(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.orch.RunFunnel(ctx, "digital_product", "same objective")
	require.NoError(t, err)
	second, err := h.orch.RunFunnel(ctx, "digital_product", "same objective")
	require.NoError(t, err)

	require.Equal(t, len(first.Steps), len(second.Steps))
	for i := range first.Steps {
		assert.Equal(t, first.Steps[i].Capability, second.Steps[i].Capability)
	}
	assert.Empty(t, cmp.Diff(fieldSet(first.FinalOutput), fieldSet(second.FinalOutput)))
}

func fieldSet(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestRunFunnelShortCircuit(t *testing.T) {
	h := newHarness(t)
	h.client.failOn["generate_landing_page"] = generation.ErrGenerationFailed

	_, err := h.orch.RunFunnel(context.Background(), "digital_product", "objective")
	require.Error(t, err)

	var failure *FunnelFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 2, failure.FailedStep)
	assert.Equal(t, "generate_landing_page", failure.Capability)
	require.Len(t, failure.CompletedSteps, 2)
	assert.Equal(t, "find_product_idea", failure.CompletedSteps[0].Capability)
	assert.Equal(t, "generate_content", failure.CompletedSteps[1].Capability)

	assert.Equal(t, 0, h.client.callCount("generate_social_posts"),
		"steps after the failure must never be invoked")
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
}

func TestRunFunnelUnknownID(t *testing.T) {
	h := newHarness(t)

	_, err := h.orch.RunFunnel(context.Background(), "moon_landing", "objective")
	assert.ErrorIs(t, err, ErrUnknownFunnel)
	assert.Equal(t, 0, h.client.totalCalls())
}

func TestRunFunnelCancellationBetweenSteps(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.orch.RunFunnel(ctx, "digital_product", "objective")
	require.Error(t, err)

	var failure *FunnelFailure
	require.ErrorAs(t, err, &failure)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, failure.CompletedSteps)
}

func TestRunFunnelLeadOutreach(t *testing.T) {
	h := newHarness(t)

	result, err := h.orch.RunFunnel(context.Background(), "lead_outreach", "pitch AI websites")
	require.NoError(t, err)

	require.Len(t, result.Steps, 3)
	assert.Equal(t, "qualify_leads", result.Steps[0].Capability)
	assert.Equal(t, "draft_outreach_email", result.Steps[1].Capability)
	assert.Equal(t, "send_outreach_email", result.Steps[2].Capability)

	// No email credentials in the harness, so delivery reports unconfigured.
	assert.Equal(t, false, result.FinalOutput["delivered"])
	assert.NotEmpty(t, result.Summary)
}

func TestRunFunnelPersistsProvenance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	result, err := h.orch.RunFunnel(ctx, "digital_product", "objective")
	require.NoError(t, err)

	records, err := h.records.QueryRecords(ctx, "funnel_runs", map[string]any{"phase": "succeeded"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.RunID, records[0].ID)
	assert.Equal(t, "digital_product", records[0].Fields["funnelId"])
}

func TestRunFunnelFailureRecordsPhase(t *testing.T) {
	h := newHarness(t)
	h.client.failOn["find_product_idea"] = errors.New("backend down")
	ctx := context.Background()

	_, err := h.orch.RunFunnel(ctx, "digital_product", "objective")
	require.Error(t, err)

	records, err := h.records.QueryRecords(ctx, "funnel_runs", map[string]any{"phase": "failed"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, float64(0), toFloat(records[0].Fields["failedStep"]))
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return -1
	}
}

func TestRunFunnelSummaryFallsBackToTemplate(t *testing.T) {
	h := newHarness(t)
	h.client.failOn["summarize_funnel"] = generation.ErrGenerationFailed

	result, err := h.orch.RunFunnel(context.Background(), "digital_product", "objective")
	require.NoError(t, err, "a failed summary call must not fail the run")
	assert.Contains(t, result.Summary, "Local SEO Playbook")
}
