package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmesoai/Omarim-AI-sub000/internal/funnel"
	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// StepResult is the provenance record of one completed funnel step.
type StepResult struct {
	StepIndex  int            `json:"stepIndex"`
	Capability string         `json:"capabilityName"`
	Output     map[string]any `json:"output"`
}

// FunnelResult is the aggregate outcome of a fully successful run. Built
// once after the last step; never mutated afterwards.
type FunnelResult struct {
	RunID       string         `json:"runId"`
	FunnelID    string         `json:"funnelId"`
	Steps       []StepResult   `json:"steps"`
	FinalOutput map[string]any `json:"finalOutput"`
	Summary     string         `json:"summary"`
}

// FunnelFailure reports the first failing step. The completed steps are
// retained for diagnostics; no FunnelResult exists for the run.
type FunnelFailure struct {
	RunID          string
	FunnelID       string
	FailedStep     int
	Capability     string
	CompletedSteps []StepResult
	Err            error
}

func (f *FunnelFailure) Error() string {
	return fmt.Sprintf("funnel %s failed at step %d (%s): %v",
		f.FunnelID, f.FailedStep, f.Capability, f.Err)
}

func (f *FunnelFailure) Unwrap() error { return f.Err }

// runPhase is the run state visible in logs and provenance records.
type runPhase string

const (
	phaseRunning   runPhase = "running"
	phaseSucceeded runPhase = "succeeded"
	phaseFailed    runPhase = "failed"
)

// RunFunnel executes a declared funnel strictly in step order, halting at
// the first failure. Cancellation is honored between steps, never mid-step.
func (o *Orchestrator) RunFunnel(ctx context.Context, funnelID, objective string) (*FunnelResult, error) {
	def, ok := o.funnels[funnelID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunnel, funnelID)
	}

	runID := uuid.NewString()
	timer := logging.StartTimer(logging.CategoryFunnel, "RunFunnel:"+funnelID)
	defer timer.Stop()
	logging.Funnel("Run %s: funnel %s started (%d steps)", runID, funnelID, len(def.Steps))
	o.persistRun(ctx, runID, funnelID, phaseRunning, map[string]any{"objective": objective})

	steps := make([]StepResult, 0, len(def.Steps))
	outputs := make([]map[string]any, 0, len(def.Steps))
	for i, step := range def.Steps {
		if err := ctx.Err(); err != nil {
			return nil, o.fail(ctx, runID, def, i, step.Capability, steps, err)
		}

		input, err := funnel.BuildStepInput(step, objective, outputs)
		if err != nil {
			return nil, o.fail(ctx, runID, def, i, step.Capability, steps, err)
		}

		inv, err := o.caps.Invoke(ctx, step.Capability, input)
		if err != nil {
			return nil, o.fail(ctx, runID, def, i, step.Capability, steps, err)
		}
		if inv.Tool != nil {
			err := fmt.Errorf("step capability %s returned a tool invocation inside a funnel", step.Capability)
			return nil, o.fail(ctx, runID, def, i, step.Capability, steps, err)
		}

		steps = append(steps, StepResult{StepIndex: i, Capability: step.Capability, Output: inv.Output})
		outputs = append(outputs, inv.Output)
		logging.FunnelDebug("Run %s: step %d (%s) completed in %dms", runID, i, step.Capability, inv.DurationMs)
	}

	finalOutput := assembleOutput(def, outputs)
	summary := o.summarize(ctx, def, runID, finalOutput)

	result := &FunnelResult{
		RunID:       runID,
		FunnelID:    funnelID,
		Steps:       steps,
		FinalOutput: finalOutput,
		Summary:     summary,
	}
	o.persistRun(ctx, runID, def.ID, phaseSucceeded, map[string]any{
		"finalOutput": finalOutput,
		"summary":     summary,
		"stepCount":   len(steps),
	})
	logging.Funnel("Run %s: funnel %s succeeded", runID, funnelID)
	return result, nil
}

func (o *Orchestrator) fail(ctx context.Context, runID string, def *funnel.Definition, stepIndex int, capabilityName string, completed []StepResult, err error) error {
	logging.Funnel("Run %s: funnel %s failed at step %d (%s): %v",
		runID, def.ID, stepIndex, capabilityName, err)
	o.persistRun(ctx, runID, def.ID, phaseFailed, map[string]any{
		"failedStep": stepIndex,
		"capability": capabilityName,
		"error":      err.Error(),
	})
	return &FunnelFailure{
		RunID:          runID,
		FunnelID:       def.ID,
		FailedStep:     stepIndex,
		Capability:     capabilityName,
		CompletedSteps: completed,
		Err:            err,
	}
}

func assembleOutput(def *funnel.Definition, outputs []map[string]any) map[string]any {
	final := make(map[string]any, len(def.Output))
	for _, field := range def.Output {
		if v, ok := outputs[field.From.Step][field.From.Field]; ok {
			final[field.Name] = v
		}
	}
	return final
}

// summarize produces the run summary: one extra direct call when the funnel
// declares a summary capability, falling back to the deterministic template
// when the call fails or no capability is declared.
func (o *Orchestrator) summarize(ctx context.Context, def *funnel.Definition, runID string, finalOutput map[string]any) string {
	if def.SummaryCapability != "" {
		inv, err := o.caps.Invoke(ctx, def.SummaryCapability, map[string]any{
			"funnelId":    def.ID,
			"finalOutput": finalOutput,
		})
		if err == nil && inv.Tool == nil {
			if s, ok := inv.Output["summary"].(string); ok && s != "" {
				return s
			}
		}
		if err != nil {
			logging.Funnel("Run %s: summary capability failed, using template: %v", runID, err)
		}
	}
	if def.SummaryTemplate != "" {
		if s, err := generation.RenderTemplate(def.SummaryTemplate, finalOutput); err == nil {
			return s
		}
	}
	return fmt.Sprintf("Funnel %s completed %d steps.", def.ID, len(def.Steps))
}

// persistRun records provenance when a record store is wired. Best effort;
// persistence failures never affect the run outcome.
func (o *Orchestrator) persistRun(ctx context.Context, runID, funnelID string, phase runPhase, fields map[string]any) {
	if o.records == nil {
		return
	}
	record := map[string]any{
		"funnelId":   funnelID,
		"phase":      string(phase),
		"finishedAt": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range fields {
		record[k] = v
	}
	if _, err := o.records.SaveOrUpdateRecord(ctx, "funnel_runs", runID, record); err != nil {
		logging.Orchestra("Failed to persist run %s: %v", runID, err)
	}
}
