// Package funnel declares fixed-topology capability pipelines: an ordered
// list of steps whose inputs are bound from the run objective and from the
// outputs of earlier steps. Topologies are declared at startup, never
// inferred at runtime.
package funnel

import (
	"fmt"

	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
)

// FieldRef points at one field of one earlier step's output.
type FieldRef struct {
	Step  int
	Field string
}

// Binding describes how one input field of a step is built.
// Exactly one of the three sources is set.
type Binding struct {
	// Literal is a fixed value baked into the definition.
	Literal any

	// FromObjective binds the run's objective string.
	FromObjective bool

	// FromStep binds a field of an earlier step's output.
	FromStep *FieldRef
}

// Step is one pipeline stage: the capability to invoke and how to build its
// input.
type Step struct {
	Capability string
	Inputs     map[string]Binding
}

// OutputField names one field of the assembled final output: the target name
// and the step output it is collected from.
type OutputField struct {
	Name string
	From FieldRef
}

// Definition is a complete funnel topology.
type Definition struct {
	ID          string
	Description string
	Steps       []Step

	// Output declares which step fields make up the final output object.
	Output []OutputField

	// SummaryTemplate renders the run summary from the final output using
	// {{field}} placeholders. When SummaryCapability is set it takes
	// precedence and the summary comes from one extra direct call.
	SummaryTemplate   string
	SummaryCapability string
}

// Validate checks the topology: ordered steps, no forward or self references,
// every capability registered.
func (d *Definition) Validate(registry *schema.Registry) error {
	if d.ID == "" {
		return fmt.Errorf("funnel has empty id")
	}
	if len(d.Steps) == 0 {
		return fmt.Errorf("funnel %s has no steps", d.ID)
	}
	for i, step := range d.Steps {
		if !registry.Has(step.Capability) {
			return fmt.Errorf("funnel %s step %d references unknown capability %q", d.ID, i, step.Capability)
		}
		for field, binding := range step.Inputs {
			if err := binding.validate(); err != nil {
				return fmt.Errorf("funnel %s step %d input %q: %w", d.ID, i, field, err)
			}
			if binding.FromStep != nil && binding.FromStep.Step >= i {
				return fmt.Errorf("funnel %s step %d input %q references step %d (not yet executed)",
					d.ID, i, field, binding.FromStep.Step)
			}
		}
	}
	for _, out := range d.Output {
		if out.From.Step < 0 || out.From.Step >= len(d.Steps) {
			return fmt.Errorf("funnel %s output %q references step %d out of range", d.ID, out.Name, out.From.Step)
		}
	}
	if d.SummaryCapability != "" && !registry.Has(d.SummaryCapability) {
		return fmt.Errorf("funnel %s summary capability %q is not registered", d.ID, d.SummaryCapability)
	}
	return nil
}

func (b Binding) validate() error {
	set := 0
	if b.Literal != nil {
		set++
	}
	if b.FromObjective {
		set++
	}
	if b.FromStep != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("binding must have exactly one source, has %d", set)
	}
	return nil
}

// BuildStepInput resolves a step's bindings against the objective and the
// outputs of completed steps.
func BuildStepInput(step Step, objective string, completed []map[string]any) (map[string]any, error) {
	input := make(map[string]any, len(step.Inputs))
	for field, binding := range step.Inputs {
		switch {
		case binding.Literal != nil:
			input[field] = binding.Literal
		case binding.FromObjective:
			input[field] = objective
		case binding.FromStep != nil:
			ref := binding.FromStep
			if ref.Step < 0 || ref.Step >= len(completed) {
				return nil, fmt.Errorf("input %q references step %d, only %d completed", field, ref.Step, len(completed))
			}
			v, ok := completed[ref.Step][ref.Field]
			if !ok {
				return nil, fmt.Errorf("input %q: step %d output has no field %q", field, ref.Step, ref.Field)
			}
			input[field] = v
		}
	}
	return input, nil
}
