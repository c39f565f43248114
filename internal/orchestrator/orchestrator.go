// Package orchestrator dispatches interpreted commands to capabilities and
// drives funnel pipelines step by step.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmesoai/Omarim-AI-sub000/internal/capability"
	"github.com/mmesoai/Omarim-AI-sub000/internal/funnel"
	"github.com/mmesoai/Omarim-AI-sub000/internal/interpreter"
	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
	"github.com/mmesoai/Omarim-AI-sub000/internal/store"
)

// ErrUnknownFunnel is returned when running a funnel id that was never
// declared.
var ErrUnknownFunnel = errors.New("unknown funnel")

// Config wires the orchestrator's collaborators.
type Config struct {
	Capabilities *capability.Set
	Interpreter  *interpreter.Interpreter
	Funnels      map[string]*funnel.Definition

	// Records receives best-effort run provenance. Optional.
	Records store.RecordStore

	// Blueprint is the ground-truth document for self-knowledge answers.
	Blueprint map[string]any

	// MaxToolHops bounds the tool-invocation protocol. Zero means the
	// default of one hop.
	MaxToolHops int
}

// Orchestrator executes single-action dispatches and funnel runs. Read-only
// after construction; safe for concurrent use.
type Orchestrator struct {
	caps        *capability.Set
	interp      *interpreter.Interpreter
	funnels     map[string]*funnel.Definition
	records     store.RecordStore
	blueprint   map[string]any
	maxToolHops int
}

// New validates every funnel topology against the capability registry and
// returns a ready orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Capabilities == nil {
		return nil, fmt.Errorf("capability set is required")
	}
	for id, def := range cfg.Funnels {
		if err := def.Validate(cfg.Capabilities.Registry()); err != nil {
			return nil, fmt.Errorf("invalid funnel %s: %w", id, err)
		}
	}
	hops := cfg.MaxToolHops
	if hops <= 0 {
		hops = 1
	}
	return &Orchestrator{
		caps:        cfg.Capabilities,
		interp:      cfg.Interpreter,
		funnels:     cfg.Funnels,
		records:     cfg.Records,
		blueprint:   cfg.Blueprint,
		maxToolHops: hops,
	}, nil
}

// ActionResult is the outcome of one single-action dispatch.
type ActionResult struct {
	Action interpreter.Action `json:"action"`
	Output map[string]any     `json:"output,omitempty"`

	// Unrecognized marks the fixed fallback outcome. No capability was
	// invoked.
	Unrecognized bool   `json:"unrecognized,omitempty"`
	Message      string `json:"message,omitempty"`
}

// HandleText interprets one utterance and dispatches the resulting command.
func (o *Orchestrator) HandleText(ctx context.Context, rawText string) (*ActionResult, error) {
	cmd, err := o.interp.Interpret(ctx, rawText)
	if err != nil {
		return nil, err
	}
	return o.RunSingleAction(ctx, cmd)
}

// RunSingleAction maps a command to exactly one capability and invokes it.
// Unrecognized commands return a fixed fallback without invoking anything.
func (o *Orchestrator) RunSingleAction(ctx context.Context, cmd *interpreter.InterpretedCommand) (*ActionResult, error) {
	if cmd.Action == interpreter.ActionUnrecognized {
		logging.Orchestra("Unrecognized command, returning fallback")
		return &ActionResult{
			Action:       interpreter.ActionUnrecognized,
			Unrecognized: true,
			Message:      "I did not understand that request. Try asking me to find leads, generate content, or launch a product.",
		}, nil
	}

	params, err := interpreter.DecodeParams(cmd)
	if err != nil {
		return nil, fmt.Errorf("decoding parameter for %s: %w", cmd.Action, err)
	}

	switch p := params.(type) {
	case *interpreter.AgentParams:
		return o.invokeAction(ctx, cmd.Action, "plan_campaign_action",
			map[string]any{"objective": p.Objective})

	case *interpreter.SelfKnowledgeParams:
		input := map[string]any{"question": p.Question}
		if o.blueprint != nil {
			input["blueprint"] = o.blueprint
		}
		return o.invokeAction(ctx, cmd.Action, "answer_self_knowledge_question", input)

	case *interpreter.FunnelParams:
		result, err := o.RunFunnel(ctx, "digital_product", p.Objective)
		if err != nil {
			return nil, err
		}
		return &ActionResult{
			Action: cmd.Action,
			Output: map[string]any{
				"runId":       result.RunID,
				"finalOutput": result.FinalOutput,
				"summary":     result.Summary,
			},
		}, nil

	case *interpreter.FindLeadsParams:
		input := map[string]any{}
		if p.Count > 0 {
			input["count"] = float64(p.Count)
		}
		if len(p.Keywords) > 0 {
			keywords := make([]any, len(p.Keywords))
			for i, k := range p.Keywords {
				keywords[i] = k
			}
			input["keywords"] = keywords
		}
		return o.invokeAction(ctx, cmd.Action, "qualify_leads", input)

	case *interpreter.ContentParams:
		return o.invokeAction(ctx, cmd.Action, "generate_content", map[string]any{
			"productName":    p.ProductName,
			"description":    p.Description,
			"targetAudience": p.TargetAudience,
		})

	case *interpreter.ColdEmailParams:
		return o.invokeAction(ctx, cmd.Action, "send_outreach_email", map[string]any{
			"to":      p.To,
			"subject": p.Subject,
			"body":    p.Body,
		})

	case *interpreter.SocialPostParams:
		return o.invokeAction(ctx, cmd.Action, "publish_social_post", map[string]any{
			"platform": p.Platform,
			"content":  p.Content,
		})

	default:
		return nil, fmt.Errorf("no dispatch target for action %q", cmd.Action)
	}
}

func (o *Orchestrator) invokeAction(ctx context.Context, action interpreter.Action, capabilityName string, input map[string]any) (*ActionResult, error) {
	logging.OrchestraDebug("Dispatching %s to capability %s", action, capabilityName)
	output, err := o.invokeWithTools(ctx, capabilityName, input)
	if err != nil {
		return nil, err
	}
	return &ActionResult{Action: action, Output: output}, nil
}
