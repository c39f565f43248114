// Package capability binds descriptors to runnable implementations: direct
// capabilities that make one generation call, and composite capabilities
// that run deterministic code or delegate to an external collaborator.
package capability

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
)

// Capability errors.
var (
	// ErrUnknownCapability is returned when invoking a name that was never
	// registered.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrCapabilityFailed wraps execution failures of a composite capability.
	ErrCapabilityFailed = errors.New("capability execution failed")
)

// RunFunc executes a composite capability. Input has already passed the
// input-shape check; the returned value must conform to the output shape.
type RunFunc func(ctx context.Context, input map[string]any) (map[string]any, error)

// Capability pairs a descriptor with its implementation.
//
// Direct capabilities carry a prompt Template (and optionally a System
// prompt and Tools) and leave Run nil. Composite capabilities carry Run and
// leave the prompt fields empty.
type Capability struct {
	Descriptor *schema.Descriptor

	// Direct fields.
	System      string
	Template    string
	Tools       []generation.ToolDefinition
	Temperature float64

	// Composite field.
	Run RunFunc
}

// Validate checks that the implementation matches the descriptor kind.
func (c *Capability) Validate() error {
	if c.Descriptor == nil {
		return fmt.Errorf("%w: nil descriptor", schema.ErrDescriptorInvalid)
	}
	if err := c.Descriptor.Validate(); err != nil {
		return err
	}
	switch c.Descriptor.Kind {
	case schema.KindDirect:
		if c.Template == "" {
			return fmt.Errorf("%w: direct capability %s has no template",
				schema.ErrDescriptorInvalid, c.Descriptor.Name)
		}
		if c.Run != nil {
			return fmt.Errorf("%w: direct capability %s must not define Run",
				schema.ErrDescriptorInvalid, c.Descriptor.Name)
		}
	case schema.KindComposite:
		if c.Run == nil {
			return fmt.Errorf("%w: composite capability %s has no Run",
				schema.ErrDescriptorInvalid, c.Descriptor.Name)
		}
		if c.Template != "" || len(c.Tools) > 0 {
			return fmt.Errorf("%w: composite capability %s must not define prompt fields",
				schema.ErrDescriptorInvalid, c.Descriptor.Name)
		}
	}
	return nil
}

// Invocation is the outcome of one capability call. Exactly one of Output
// and Tool is set.
type Invocation struct {
	Capability string
	Output     map[string]any
	Tool       *generation.ToolInvocation
	DurationMs int64
}
