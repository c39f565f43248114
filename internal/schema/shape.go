// Package schema declares the structural shapes capabilities exchange and
// the process-wide capability registry built over them.
//
// A Shape maps field names to semantic field specs. Two values satisfy a
// shape when every required field is present with a conforming type; unknown
// extra fields are ignored, never rejected, to tolerate generation-service
// over-production.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FieldType is the semantic type of a shape field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeEnum    FieldType = "enum"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"

	// TypeOpaque accepts any well-formed structured value. Used for blob
	// fields whose internal shape is owned by the producer (e.g. a business
	// blueprint consumed as ground truth by Q&A).
	TypeOpaque FieldType = "opaque"
)

// Constraints holds optional per-field restrictions.
type Constraints struct {
	Min         *float64
	Max         *float64
	Format      string
	EnumMembers []string
}

// FieldSpec describes one field of a Shape.
type FieldSpec struct {
	Type        FieldType
	Required    bool
	Constraints *Constraints

	// Items describes the element shape for TypeArray fields whose elements
	// are objects. Nil means elements are unconstrained.
	Items Shape

	// Fields describes the nested shape for TypeObject fields. Nil means
	// the object's internals are unconstrained.
	Fields Shape
}

// Shape is a structural schema: field name -> spec.
type Shape map[string]FieldSpec

// Validate checks that the shape definition itself is well formed.
func (s Shape) Validate() error {
	for name, spec := range s {
		if name == "" {
			return fmt.Errorf("shape has field with empty name")
		}
		switch spec.Type {
		case TypeString, TypeNumber, TypeBoolean, TypeArray, TypeObject, TypeOpaque:
		case TypeEnum:
			if spec.Constraints == nil || len(spec.Constraints.EnumMembers) == 0 {
				return fmt.Errorf("enum field %q has no members", name)
			}
		default:
			return fmt.Errorf("field %q has unknown type %q", name, spec.Type)
		}
		if spec.Items != nil {
			if err := spec.Items.Validate(); err != nil {
				return fmt.Errorf("field %q items: %w", name, err)
			}
		}
		if spec.Fields != nil {
			if err := spec.Fields.Validate(); err != nil {
				return fmt.Errorf("field %q fields: %w", name, err)
			}
		}
	}
	return nil
}

// MissingFields returns the names of required fields absent from value,
// sorted for deterministic error messages.
func (s Shape) MissingFields(value map[string]any) []string {
	var missing []string
	for name, spec := range s {
		if !spec.Required {
			continue
		}
		if v, ok := value[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Conforms reports whether value structurally satisfies the shape: every
// required field present with a conforming type. Extra fields are ignored.
func (s Shape) Conforms(value map[string]any) bool {
	return s.Check(value) == nil
}

// Check validates value against the shape and returns a descriptive error
// wrapping ErrSchemaViolation on the first mismatch.
func (s Shape) Check(value map[string]any) error {
	if missing := s.MissingFields(value); len(missing) > 0 {
		return fmt.Errorf("%w: missing required field(s) %s",
			ErrSchemaViolation, strings.Join(missing, ", "))
	}
	for name, spec := range s {
		v, ok := value[name]
		if !ok || v == nil {
			continue // optional and absent
		}
		if err := checkField(name, spec, v); err != nil {
			return err
		}
	}
	return nil
}

func checkField(name string, spec FieldSpec, v any) error {
	switch spec.Type {
	case TypeString:
		if _, ok := v.(string); !ok {
			return typeViolation(name, spec.Type, v)
		}
	case TypeEnum:
		sv, ok := v.(string)
		if !ok {
			return typeViolation(name, spec.Type, v)
		}
		if spec.Constraints != nil && len(spec.Constraints.EnumMembers) > 0 {
			for _, m := range spec.Constraints.EnumMembers {
				if sv == m {
					return nil
				}
			}
			return fmt.Errorf("%w: field %q value %q not in enum", ErrSchemaViolation, name, sv)
		}
	case TypeNumber:
		f, ok := asNumber(v)
		if !ok {
			return typeViolation(name, spec.Type, v)
		}
		if spec.Constraints != nil {
			if spec.Constraints.Min != nil && f < *spec.Constraints.Min {
				return fmt.Errorf("%w: field %q below minimum", ErrSchemaViolation, name)
			}
			if spec.Constraints.Max != nil && f > *spec.Constraints.Max {
				return fmt.Errorf("%w: field %q above maximum", ErrSchemaViolation, name)
			}
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return typeViolation(name, spec.Type, v)
		}
	case TypeArray:
		items, ok := v.([]any)
		if !ok {
			return typeViolation(name, spec.Type, v)
		}
		if spec.Items != nil {
			for i, item := range items {
				obj, ok := item.(map[string]any)
				if !ok {
					return fmt.Errorf("%w: field %q element %d is not an object", ErrSchemaViolation, name, i)
				}
				if err := spec.Items.Check(obj); err != nil {
					return fmt.Errorf("field %q element %d: %w", name, i, err)
				}
			}
		}
	case TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return typeViolation(name, spec.Type, v)
		}
		if spec.Fields != nil {
			if err := spec.Fields.Check(obj); err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
		}
	case TypeOpaque:
		// Any non-nil value is acceptable.
	}
	return nil
}

func typeViolation(name string, want FieldType, got any) error {
	return fmt.Errorf("%w: field %q expected %s, got %T", ErrSchemaViolation, name, want, got)
}

// asNumber accepts the numeric representations seen from JSON decoding and
// manual value construction.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
