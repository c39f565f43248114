package schema

import "sort"

// JSONSchema converts a Shape to a raw JSON-schema object suitable for
// schema-constrained decoding (generation backend response schemas and tool
// parameter declarations).
func (s Shape) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s))
	var required []string

	for name, spec := range s {
		properties[name] = fieldJSONSchema(spec)
		if spec.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func fieldJSONSchema(spec FieldSpec) map[string]any {
	switch spec.Type {
	case TypeString:
		out := map[string]any{"type": "string"}
		if spec.Constraints != nil && spec.Constraints.Format != "" {
			out["format"] = spec.Constraints.Format
		}
		return out
	case TypeEnum:
		out := map[string]any{"type": "string"}
		if spec.Constraints != nil && len(spec.Constraints.EnumMembers) > 0 {
			members := make([]any, len(spec.Constraints.EnumMembers))
			for i, m := range spec.Constraints.EnumMembers {
				members[i] = m
			}
			out["enum"] = members
		}
		return out
	case TypeNumber:
		out := map[string]any{"type": "number"}
		if spec.Constraints != nil {
			if spec.Constraints.Min != nil {
				out["minimum"] = *spec.Constraints.Min
			}
			if spec.Constraints.Max != nil {
				out["maximum"] = *spec.Constraints.Max
			}
		}
		return out
	case TypeBoolean:
		return map[string]any{"type": "boolean"}
	case TypeArray:
		out := map[string]any{"type": "array"}
		if spec.Items != nil {
			out["items"] = spec.Items.JSONSchema()
		}
		return out
	case TypeObject:
		if spec.Fields != nil {
			return spec.Fields.JSONSchema()
		}
		return map[string]any{"type": "object"}
	case TypeOpaque:
		// Opaque blobs are validated only as well-formed structured data.
		return map[string]any{"type": "object"}
	default:
		return map[string]any{}
	}
}
