package capability

import (
	"context"
	"fmt"
	"time"

	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
)

// Set holds the runnable capabilities behind a frozen descriptor registry.
// Built once at startup; read-only afterwards.
type Set struct {
	registry     *schema.Registry
	client       generation.Client
	capabilities map[string]*Capability
}

// NewSet creates an empty capability set over the given registry and
// generation client.
func NewSet(registry *schema.Registry, client generation.Client) *Set {
	return &Set{
		registry:     registry,
		client:       client,
		capabilities: make(map[string]*Capability),
	}
}

// Add registers a capability and its descriptor.
func (s *Set) Add(c *Capability) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.registry.Register(c.Descriptor); err != nil {
		return err
	}
	s.capabilities[c.Descriptor.Name] = c
	return nil
}

// MustAdd adds a capability and panics on error. For static startup wiring.
func (s *Set) MustAdd(c *Capability) {
	if err := s.Add(c); err != nil {
		panic(fmt.Sprintf("failed to add capability: %v", err))
	}
}

// Freeze freezes the underlying registry.
func (s *Set) Freeze() { s.registry.Freeze() }

// Registry exposes the descriptor registry for read access.
func (s *Set) Registry() *schema.Registry { return s.registry }

// Get returns a capability by name, or nil.
func (s *Set) Get(name string) *Capability { return s.capabilities[name] }

// Invoke runs one capability by name.
//
// The input is checked against the descriptor's input shape before anything
// else happens; a violation fails fast with zero generation calls. Direct
// capabilities render their template and make exactly one generation call.
// Composite capabilities run their Go implementation. Either way the output
// is checked against the output shape before being returned.
func (s *Set) Invoke(ctx context.Context, name string, input map[string]any) (*Invocation, error) {
	c := s.capabilities[name]
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCapability, name)
	}

	if err := c.Descriptor.InputShape.Check(input); err != nil {
		logging.Capability("Input rejected for %s: %v", name, err)
		return nil, fmt.Errorf("input for %s: %w", name, err)
	}

	start := time.Now()
	var inv *Invocation
	var err error
	switch c.Descriptor.Kind {
	case schema.KindDirect:
		inv, err = s.invokeDirect(ctx, c, input)
	default:
		inv, err = s.invokeComposite(ctx, c, input)
	}
	if err != nil {
		return nil, err
	}

	inv.Capability = name
	inv.DurationMs = time.Since(start).Milliseconds()
	logging.CapabilityDebug("Invoked %s in %dms (tool=%v)", name, inv.DurationMs, inv.Tool != nil)
	return inv, nil
}

func (s *Set) invokeDirect(ctx context.Context, c *Capability, input map[string]any) (*Invocation, error) {
	res, err := s.client.Generate(ctx, generation.Request{
		Capability:  c.Descriptor.Name,
		System:      c.System,
		Template:    c.Template,
		Variables:   input,
		OutputShape: c.Descriptor.OutputShape,
		Tools:       c.Tools,
		Temperature: c.Temperature,
	})
	if err != nil {
		return nil, err
	}

	if res.Tool != nil {
		return &Invocation{Tool: res.Tool}, nil
	}

	// Clients re-check conformance themselves; this guards custom clients.
	if err := c.Descriptor.OutputShape.Check(res.Value); err != nil {
		return nil, fmt.Errorf("%w: %s output: %v", generation.ErrGenerationFailed, c.Descriptor.Name, err)
	}
	return &Invocation{Output: res.Value}, nil
}

func (s *Set) invokeComposite(ctx context.Context, c *Capability, input map[string]any) (*Invocation, error) {
	out, err := c.Run(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCapabilityFailed, c.Descriptor.Name, err)
	}
	if err := c.Descriptor.OutputShape.Check(out); err != nil {
		return nil, fmt.Errorf("%w: %s: output %v", ErrCapabilityFailed, c.Descriptor.Name, err)
	}
	return &Invocation{Output: out}, nil
}
