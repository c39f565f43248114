package leads

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDatasetHasSevenDecisionMakers(t *testing.T) {
	rows := DefaultDataset()
	require.Len(t, rows, 10)

	q := NewQualifier(NewStaticProvider(rows))
	qualified, err := q.FindAndQualify(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Len(t, qualified, 7)
}

func TestFindAndQualifyCount(t *testing.T) {
	q := NewQualifier(NewStaticProvider(DefaultDataset()))

	qualified, err := q.FindAndQualify(context.Background(), 3, nil)
	require.NoError(t, err)
	require.Len(t, qualified, 3)
	for _, lead := range qualified {
		assert.NotEmpty(t, lead.QualificationReason)
		assert.NotEmpty(t, lead.ContactEmail)
	}
}

func TestFindAndQualifyDefaultCount(t *testing.T) {
	q := NewQualifier(NewStaticProvider(DefaultDataset()))

	qualified, err := q.FindAndQualify(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Len(t, qualified, 5)
}

func TestFindAndQualifyPreservesDatasetOrder(t *testing.T) {
	q := NewQualifier(NewStaticProvider(DefaultDataset()))

	first, err := q.FindAndQualify(context.Background(), 10, nil)
	require.NoError(t, err)
	second, err := q.FindAndQualify(context.Background(), 10, nil)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second), "idempotent for identical input")
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
	assert.Equal(t, "Harbor Lights Dental", first[0].Name)
}

func TestFindAndQualifyExtraKeywordsNarrow(t *testing.T) {
	q := NewQualifier(NewStaticProvider(DefaultDataset()))

	qualified, err := q.FindAndQualify(context.Background(), 10, []string{"founder"})
	require.NoError(t, err)
	require.Len(t, qualified, 2)
	for _, lead := range qualified {
		assert.Equal(t, "Founder", lead.ContactTitle)
	}
}

func TestFindAndQualifyExtraKeywordsCannotWiden(t *testing.T) {
	q := NewQualifier(NewStaticProvider(DefaultDataset()))

	// "manager" matches the Office Manager row, but that title is not a
	// decision-maker, so the extra keyword must not qualify it.
	qualified, err := q.FindAndQualify(context.Background(), 10, []string{"manager"})
	require.NoError(t, err)
	assert.Empty(t, qualified)
}

func TestFindAndQualifyCaseInsensitive(t *testing.T) {
	rows := []Business{
		{Name: "A", ContactName: "X", ContactTitle: "OWNER", ContactEmail: "x@a.example"},
		{Name: "B", ContactName: "Y", ContactTitle: "intern", ContactEmail: "y@b.example"},
	}
	q := NewQualifier(NewStaticProvider(rows))

	qualified, err := q.FindAndQualify(context.Background(), 5, nil)
	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, "A", qualified[0].Name)
}

func TestStaticProviderCopiesDataset(t *testing.T) {
	rows := DefaultDataset()
	p := NewStaticProvider(rows)
	rows[0].Name = "mutated"

	got, err := p.Businesses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Harbor Lights Dental", got[0].Name)
}
