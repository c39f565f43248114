package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
)

// ErrInterpretation wraps generation failures during classification. Unknown
// action labels never produce this error; they coerce to unrecognized.
var ErrInterpretation = errors.New("interpretation failed")

// InterpretedCommand is the classification outcome for one utterance.
type InterpretedCommand struct {
	Action    Action `json:"action"`
	Parameter string `json:"parameter"`
}

// Interpreter classifies utterances with one generation call each.
type Interpreter struct {
	client generation.Client
}

// New creates an interpreter over the given generation client.
func New(client generation.Client) *Interpreter {
	return &Interpreter{client: client}
}

var outputShape = schema.Shape{
	"action":    {Type: schema.TypeString, Required: true},
	"parameter": {Type: schema.TypeString},
}

const classifyTemplate = `You route user requests for a business co-pilot.

Available actions:
{{actions}}

Classify the request below into exactly one action name from the list, or
"unrecognized" if none applies. Extract the parameter: the portion of the
request the action needs, or the full request verbatim when in doubt.

Request: {{rawText}}`

// Interpret classifies rawText into an action plus parameter. Exactly one
// generation call; no retries at this layer.
func (i *Interpreter) Interpret(ctx context.Context, rawText string) (*InterpretedCommand, error) {
	res, err := i.client.Generate(ctx, generation.Request{
		Capability:  "interpret_command",
		Template:    classifyTemplate,
		Variables:   map[string]any{"actions": actionMenu(), "rawText": rawText},
		OutputShape: outputShape,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterpretation, err)
	}

	label, _ := res.Value["action"].(string)
	action := Action(strings.TrimSpace(label))
	if !action.Valid() {
		logging.Interpreter("Coercing unknown action label %q to unrecognized", label)
		action = ActionUnrecognized
	}

	parameter, _ := res.Value["parameter"].(string)
	if parameter == "" {
		parameter = rawText
	}

	logging.InterpreterDebug("Classified %q as %s", rawText, action)
	return &InterpretedCommand{Action: action, Parameter: parameter}, nil
}

func actionMenu() string {
	var b strings.Builder
	for _, a := range Actions() {
		fmt.Fprintf(&b, "- %s: %s\n", a, descriptions[a])
	}
	return strings.TrimRight(b.String(), "\n")
}
