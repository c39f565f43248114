package capability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
)

func ideaCapability() *Capability {
	return &Capability{
		Descriptor: &schema.Descriptor{
			Name:        "find_product_idea",
			Description: "test",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"objective": {Type: schema.TypeString, Required: true},
			},
			OutputShape: schema.Shape{
				"productName": {Type: schema.TypeString, Required: true},
				"priceUSD":    {Type: schema.TypeNumber, Required: true},
			},
		},
		Template: "Objective: {{objective}}",
	}
}

func TestInvokeDirect(t *testing.T) {
	client := newMockClient().respond("find_product_idea", map[string]any{
		"productName": "Local SEO Playbook",
		"priceUSD":    float64(49),
	})
	set := NewSet(schema.NewRegistry(), client)
	set.MustAdd(ideaCapability())
	set.Freeze()

	inv, err := set.Invoke(context.Background(), "find_product_idea",
		map[string]any{"objective": "help local dentists"})
	require.NoError(t, err)
	assert.Equal(t, "Local SEO Playbook", inv.Output["productName"])
	assert.Nil(t, inv.Tool)
	assert.Equal(t, 1, client.callCount())
}

func TestInvokeFailsFastWithoutGenerationCall(t *testing.T) {
	client := newMockClient()
	set := NewSet(schema.NewRegistry(), client)
	set.MustAdd(ideaCapability())
	set.Freeze()

	_, err := set.Invoke(context.Background(), "find_product_idea", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSchemaViolation)
	assert.Equal(t, 0, client.callCount(), "no generation call may happen on input violation")
}

func TestInvokeUnknownCapability(t *testing.T) {
	set := NewSet(schema.NewRegistry(), newMockClient())
	set.Freeze()

	_, err := set.Invoke(context.Background(), "does_not_exist", map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownCapability)
}

func TestInvokeDirectRejectsNonConformantOutput(t *testing.T) {
	client := newMockClient().respond("find_product_idea", map[string]any{
		"productName": "Playbook",
		// priceUSD omitted by the backend
	})
	set := NewSet(schema.NewRegistry(), client)
	set.MustAdd(ideaCapability())
	set.Freeze()

	_, err := set.Invoke(context.Background(), "find_product_idea",
		map[string]any{"objective": "x"})
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
}

func TestInvokeDirectSurfacesToolInvocation(t *testing.T) {
	client := newMockClient()
	client.generate = func(ctx context.Context, req generation.Request) (*generation.Result, error) {
		return &generation.Result{Tool: &generation.ToolInvocation{
			Name:      "capability_lookup",
			Arguments: map[string]any{},
		}}, nil
	}
	set := NewSet(schema.NewRegistry(), client)
	set.MustAdd(ideaCapability())
	set.Freeze()

	inv, err := set.Invoke(context.Background(), "find_product_idea",
		map[string]any{"objective": "x"})
	require.NoError(t, err)
	assert.Nil(t, inv.Output)
	require.NotNil(t, inv.Tool)
	assert.Equal(t, "capability_lookup", inv.Tool.Name)
}

func TestInvokeComposite(t *testing.T) {
	client := newMockClient()
	set := NewSet(schema.NewRegistry(), client)
	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "double",
			Description: "test",
			Kind:        schema.KindComposite,
			InputShape:  schema.Shape{"n": {Type: schema.TypeNumber, Required: true}},
			OutputShape: schema.Shape{"n": {Type: schema.TypeNumber, Required: true}},
		},
		Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			return map[string]any{"n": input["n"].(float64) * 2}, nil
		},
	})
	set.Freeze()

	inv, err := set.Invoke(context.Background(), "double", map[string]any{"n": float64(21)})
	require.NoError(t, err)
	assert.Equal(t, float64(42), inv.Output["n"])
	assert.Equal(t, 0, client.callCount(), "composite capabilities never call the backend")
}

func TestInvokeCompositeWrapsErrors(t *testing.T) {
	set := NewSet(schema.NewRegistry(), newMockClient())
	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "broken",
			Description: "test",
			Kind:        schema.KindComposite,
			InputShape:  schema.Shape{},
			OutputShape: schema.Shape{},
		},
		Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			return nil, errors.New("boom")
		},
	})
	set.Freeze()

	_, err := set.Invoke(context.Background(), "broken", map[string]any{})
	assert.ErrorIs(t, err, ErrCapabilityFailed)
}

func TestCapabilityValidate(t *testing.T) {
	direct := ideaCapability()
	direct.Template = ""
	assert.Error(t, direct.Validate(), "direct capability needs a template")

	composite := &Capability{
		Descriptor: &schema.Descriptor{
			Name:        "c",
			Description: "test",
			Kind:        schema.KindComposite,
			InputShape:  schema.Shape{},
			OutputShape: schema.Shape{},
		},
	}
	assert.Error(t, composite.Validate(), "composite capability needs Run")
}
