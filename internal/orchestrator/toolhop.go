package orchestrator

import (
	"context"
	"fmt"

	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// invokeWithTools runs one capability and resolves any tool invocation the
// generation backend elects to make. The tool's return value is the terminal
// answer; there is no re-prompting round. The hop count is bounded so a
// backend that keeps asking for tools cannot loop forever.
func (o *Orchestrator) invokeWithTools(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	inv, err := o.caps.Invoke(ctx, name, input)
	if err != nil {
		return nil, err
	}
	if inv.Tool == nil {
		return inv.Output, nil
	}

	for hop := 1; hop <= o.maxToolHops; hop++ {
		logging.Orchestra("Capability %s requested tool %s (hop %d/%d)",
			name, inv.Tool.Name, hop, o.maxToolHops)

		toolInv, err := o.caps.Invoke(ctx, inv.Tool.Name, inv.Tool.Arguments)
		if err != nil {
			return nil, fmt.Errorf("tool %s requested by %s: %w", inv.Tool.Name, name, err)
		}
		if toolInv.Tool == nil {
			return toolInv.Output, nil
		}
		name, inv = inv.Tool.Name, toolInv
	}
	return nil, fmt.Errorf("capability %s exceeded tool hop limit %d", name, o.maxToolHops)
}
