// Package generation defines the contract with the structure-generation
// backend and its concrete clients.
//
// Every call is a fresh, independent non-deterministic draw: no caching, no
// memoization. The only failure kind callers handle is ErrGenerationFailed.
package generation

import (
	"context"
	"errors"

	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
)

// Generation errors.
var (
	// ErrGenerationFailed wraps backend errors, timeouts, and non-conformant
	// output after internal retries are exhausted.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrTemplateUnresolved is returned when rendered variables do not cover
	// every placeholder referenced by a prompt template.
	ErrTemplateUnresolved = errors.New("unresolved template placeholder")
)

// ToolDefinition describes a composite tool the backend may elect to invoke
// mid-generation.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// ToolInvocation is returned instead of a final value when the backend
// elects to invoke a tool. The orchestrator executes the tool itself.
type ToolInvocation struct {
	Name      string
	Arguments map[string]any
}

// Request carries one structured generation call.
type Request struct {
	// Capability names the caller for logging and provenance.
	Capability string

	// System is the optional system prompt.
	System string

	// Template is the prompt template; placeholders use {{name}} syntax and
	// must all be covered by Variables.
	Template string

	// Variables supplies the template placeholders.
	Variables map[string]any

	// OutputShape is the target shape the returned value must conform to.
	OutputShape schema.Shape

	// Tools lists composite tools the backend is permitted to invoke.
	Tools []ToolDefinition

	// Temperature overrides the backend default when > 0.
	Temperature float64
}

// Result is either a structured value conforming to the request's output
// shape, or a tool invocation request - never both.
type Result struct {
	Value map[string]any
	Tool  *ToolInvocation
}

// Client is the generation backend contract. Single-shot and stateless;
// implementations must be safe for concurrent use.
type Client interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
