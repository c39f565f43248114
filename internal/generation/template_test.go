package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate("Product: {{name}} at ${{price}}", map[string]any{
		"name":  "Local SEO Playbook",
		"price": 49,
	})
	require.NoError(t, err)
	assert.Equal(t, "Product: Local SEO Playbook at $49", out)
}

func TestRenderTemplateNonStringAsJSON(t *testing.T) {
	out, err := RenderTemplate("Lead: {{lead}}", map[string]any{
		"lead": map[string]any{"name": "Maria"},
	})
	require.NoError(t, err)
	assert.Equal(t, `Lead: {"name":"Maria"}`, out)
}

func TestRenderTemplateWhitespaceInPlaceholder(t *testing.T) {
	out, err := RenderTemplate("{{ name }}", map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", out)
}

func TestRenderTemplateMissingVariables(t *testing.T) {
	_, err := RenderTemplate("{{b}} and {{a}} and {{b}}", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateUnresolved)
	assert.Contains(t, err.Error(), "a, b")
}

func TestPlaceholders(t *testing.T) {
	names := Placeholders("{{z}} {{a}} {{z}} plain {{mid_name}}")
	assert.Equal(t, []string{"a", "mid_name", "z"}, names)
	assert.Empty(t, Placeholders("no placeholders here"))
}
