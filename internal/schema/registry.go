package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// Kind distinguishes how a capability executes.
type Kind string

const (
	// KindDirect capabilities make a single generation call.
	KindDirect Kind = "direct"

	// KindComposite capabilities run deterministic code or a delegated
	// external call; they never call the generation backend themselves.
	KindComposite Kind = "composite"
)

// Descriptor declares a capability: a unique name plus its input and output
// shapes. Immutable once registered.
type Descriptor struct {
	Name        string
	Description string
	Kind        Kind
	InputShape  Shape
	OutputShape Shape
}

// Validate checks the descriptor definition.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty name", ErrDescriptorInvalid)
	}
	if d.Kind != KindDirect && d.Kind != KindComposite {
		return fmt.Errorf("%w: %s has unknown kind %q", ErrDescriptorInvalid, d.Name, d.Kind)
	}
	if err := d.InputShape.Validate(); err != nil {
		return fmt.Errorf("%w: %s input shape: %v", ErrDescriptorInvalid, d.Name, err)
	}
	if err := d.OutputShape.Validate(); err != nil {
		return fmt.Errorf("%w: %s output shape: %v", ErrDescriptorInvalid, d.Name, err)
	}
	return nil
}

// Registry holds all capability descriptors. It is built once at startup,
// frozen, and safely shared read-only for the life of the process.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
	frozen      bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]*Descriptor)}
}

// Register adds a descriptor. Fails on duplicates, invalid descriptors, or
// after Freeze.
func (r *Registry) Register(d *Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %s", ErrRegistryFrozen, d.Name)
	}
	if _, exists := r.descriptors[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, d.Name)
	}
	r.descriptors[d.Name] = d

	logging.CapabilityDebug("Registered descriptor: %s (kind=%s)", d.Name, d.Kind)
	return nil
}

// MustRegister registers a descriptor and panics on error.
// Use for static registration at startup.
func (r *Registry) MustRegister(d *Descriptor) {
	if err := r.Register(d); err != nil {
		panic(fmt.Sprintf("failed to register descriptor %s: %v", d.Name, err))
	}
}

// Freeze makes the registry read-only. Safe for unsynchronized concurrent
// reads afterwards.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Get returns a descriptor by name, or nil if not found.
func (r *Registry) Get(name string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.descriptors[name]
}

// Has returns true if a descriptor with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.descriptors[name]
	return ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered descriptors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}
