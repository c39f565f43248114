package funnel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
)

func testRegistry(names ...string) *schema.Registry {
	r := schema.NewRegistry()
	for _, name := range names {
		r.MustRegister(&schema.Descriptor{
			Name:        name,
			Description: "test",
			Kind:        schema.KindDirect,
			InputShape:  schema.Shape{},
			OutputShape: schema.Shape{},
		})
	}
	return r
}

func TestDefinitionValidate(t *testing.T) {
	r := testRegistry("a", "b")

	valid := &Definition{
		ID: "two_step",
		Steps: []Step{
			{Capability: "a", Inputs: map[string]Binding{"objective": {FromObjective: true}}},
			{Capability: "b", Inputs: map[string]Binding{"x": {FromStep: &FieldRef{Step: 0, Field: "y"}}}},
		},
		Output: []OutputField{{Name: "y", From: FieldRef{Step: 0, Field: "y"}}},
	}
	assert.NoError(t, valid.Validate(r))
}

func TestDefinitionValidateRejectsForwardReference(t *testing.T) {
	r := testRegistry("a", "b")

	def := &Definition{
		ID: "forward",
		Steps: []Step{
			{Capability: "a", Inputs: map[string]Binding{"x": {FromStep: &FieldRef{Step: 1, Field: "y"}}}},
			{Capability: "b"},
		},
	}
	err := def.Validate(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not yet executed")
}

func TestDefinitionValidateRejectsSelfReference(t *testing.T) {
	r := testRegistry("a")

	def := &Definition{
		ID: "self",
		Steps: []Step{
			{Capability: "a", Inputs: map[string]Binding{"x": {FromStep: &FieldRef{Step: 0, Field: "y"}}}},
		},
	}
	assert.Error(t, def.Validate(r))
}

func TestDefinitionValidateRejectsUnknownCapability(t *testing.T) {
	r := testRegistry("a")

	def := &Definition{ID: "ghost", Steps: []Step{{Capability: "missing"}}}
	err := def.Validate(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown capability")
}

func TestBindingValidateExactlyOneSource(t *testing.T) {
	assert.Error(t, Binding{}.validate())
	assert.Error(t, Binding{FromObjective: true, Literal: "x"}.validate())
	assert.NoError(t, Binding{FromObjective: true}.validate())
	assert.NoError(t, Binding{Literal: 5}.validate())
	assert.NoError(t, Binding{FromStep: &FieldRef{Step: 0, Field: "f"}}.validate())
}

func TestBuildStepInput(t *testing.T) {
	step := Step{
		Capability: "generate_content",
		Inputs: map[string]Binding{
			"productName": {FromStep: &FieldRef{Step: 0, Field: "productName"}},
			"tone":        {Literal: "friendly"},
			"objective":   {FromObjective: true},
		},
	}
	completed := []map[string]any{
		{"productName": "Local SEO Playbook", "priceUSD": float64(49)},
	}

	input, err := BuildStepInput(step, "help local dentists", completed)
	require.NoError(t, err)

	want := map[string]any{
		"productName": "Local SEO Playbook",
		"tone":        "friendly",
		"objective":   "help local dentists",
	}
	assert.Empty(t, cmp.Diff(want, input))
}

func TestBuildStepInputMissingField(t *testing.T) {
	step := Step{Inputs: map[string]Binding{
		"x": {FromStep: &FieldRef{Step: 0, Field: "absent"}},
	}}

	_, err := BuildStepInput(step, "", []map[string]any{{"present": 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent")
}

func TestBuiltinsTopology(t *testing.T) {
	defs := Builtins()

	digital, ok := defs["digital_product"]
	require.True(t, ok)
	require.Len(t, digital.Steps, 4)
	assert.Equal(t, "find_product_idea", digital.Steps[0].Capability)
	assert.Equal(t, "generate_content", digital.Steps[1].Capability)
	assert.Equal(t, "generate_landing_page", digital.Steps[2].Capability)
	assert.Equal(t, "generate_social_posts", digital.Steps[3].Capability)

	outreach, ok := defs["lead_outreach"]
	require.True(t, ok)
	require.Len(t, outreach.Steps, 3)
	assert.Equal(t, "qualify_leads", outreach.Steps[0].Capability)
	assert.Equal(t, "send_outreach_email", outreach.Steps[2].Capability)
}

func TestBuiltinsBindingsAreBackwardOnly(t *testing.T) {
	for id, def := range Builtins() {
		for i, step := range def.Steps {
			for field, binding := range step.Inputs {
				require.NoError(t, binding.validate(), "%s step %d input %s", id, i, field)
				if binding.FromStep != nil {
					assert.Less(t, binding.FromStep.Step, i, "%s step %d input %s", id, i, field)
				}
			}
		}
	}
}
