package generation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
)

// GenAIClient implements Client on the official google.golang.org/genai SDK.
// Functionally equivalent to GeminiClient; preferred when the SDK's schema
// types and auth plumbing are wanted over the raw REST surface.
type GenAIClient struct {
	client *genai.Client
	model  string
}

// NewGenAIClient creates a GenAI-SDK-backed client.
func NewGenAIClient(ctx context.Context, apiKey, model string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{client: client, model: model}, nil
}

// Generate renders the request's template and calls the SDK with either
// schema-constrained decoding or function declarations.
func (c *GenAIClient) Generate(ctx context.Context, req Request) (*Result, error) {
	rendered, err := RenderTemplate(req.Template, req.Variables)
	if err != nil {
		return nil, err
	}

	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = 0.2
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, len(req.Tools))
		for i, t := range req.Tools {
			decls[i] = &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  rawSchemaToGenAI(t.InputSchema),
			}
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	} else if req.OutputShape != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = shapeToGenAI(req.OutputShape)
	}

	logging.GenerationDebug("GenAI call: capability=%s, prompt=%d bytes, tools=%d",
		req.Capability, len(rendered), len(req.Tools))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(rendered), config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if calls := resp.FunctionCalls(); len(calls) > 0 {
		logging.GenerationDebug("GenAI requested tool: %s", calls[0].Name)
		return &Result{Tool: &ToolInvocation{
			Name:      calls[0].Name,
			Arguments: calls[0].Args,
		}}, nil
	}

	value, err := DecodeObject(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if req.OutputShape != nil {
		if missing := req.OutputShape.MissingFields(value); len(missing) > 0 {
			return nil, fmt.Errorf("%w: output missing required field(s) %s",
				ErrGenerationFailed, strings.Join(missing, ", "))
		}
	}
	return &Result{Value: value}, nil
}

// shapeToGenAI converts a Shape to the SDK's typed schema.
func shapeToGenAI(s schema.Shape) *genai.Schema {
	out := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s)),
	}
	for name, spec := range s {
		out.Properties[name] = fieldToGenAI(spec)
		if spec.Required {
			out.Required = append(out.Required, name)
		}
	}
	return out
}

func fieldToGenAI(spec schema.FieldSpec) *genai.Schema {
	switch spec.Type {
	case schema.TypeString:
		return &genai.Schema{Type: genai.TypeString}
	case schema.TypeEnum:
		gs := &genai.Schema{Type: genai.TypeString}
		if spec.Constraints != nil {
			gs.Enum = spec.Constraints.EnumMembers
		}
		return gs
	case schema.TypeNumber:
		return &genai.Schema{Type: genai.TypeNumber}
	case schema.TypeBoolean:
		return &genai.Schema{Type: genai.TypeBoolean}
	case schema.TypeArray:
		gs := &genai.Schema{Type: genai.TypeArray}
		if spec.Items != nil {
			gs.Items = shapeToGenAI(spec.Items)
		} else {
			gs.Items = &genai.Schema{Type: genai.TypeObject}
		}
		return gs
	case schema.TypeObject:
		if spec.Fields != nil {
			return shapeToGenAI(spec.Fields)
		}
		return &genai.Schema{Type: genai.TypeObject}
	case schema.TypeOpaque:
		return &genai.Schema{Type: genai.TypeObject}
	default:
		return &genai.Schema{Type: genai.TypeString}
	}
}

// rawSchemaToGenAI converts a raw JSON-schema object (as produced by
// Shape.JSONSchema) to the SDK's typed schema. Best-effort: unknown shapes
// fall back to untyped objects.
func rawSchemaToGenAI(raw map[string]any) *genai.Schema {
	if raw == nil {
		return nil
	}
	out := &genai.Schema{}
	switch raw["type"] {
	case "string":
		out.Type = genai.TypeString
		if members, ok := raw["enum"].([]any); ok {
			for _, m := range members {
				if s, ok := m.(string); ok {
					out.Enum = append(out.Enum, s)
				}
			}
		}
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	case "array":
		out.Type = genai.TypeArray
		if items, ok := raw["items"].(map[string]any); ok {
			out.Items = rawSchemaToGenAI(items)
		}
	default:
		out.Type = genai.TypeObject
		if props, ok := raw["properties"].(map[string]any); ok {
			out.Properties = make(map[string]*genai.Schema, len(props))
			for name, p := range props {
				if pm, ok := p.(map[string]any); ok {
					out.Properties[name] = rawSchemaToGenAI(pm)
				}
			}
		}
		if required, ok := raw["required"].([]string); ok {
			out.Required = required
		} else if required, ok := raw["required"].([]any); ok {
			for _, r := range required {
				if s, ok := r.(string); ok {
					out.Required = append(out.Required, s)
				}
			}
		}
	}
	return out
}

// Close releases the underlying SDK client.
func (c *GenAIClient) Close() error {
	return nil
}
