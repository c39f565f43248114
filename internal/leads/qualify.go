package leads

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// DefaultTitleKeywords are the contact-title substrings that mark a
// decision-maker.
var DefaultTitleKeywords = []string{
	"owner", "founder", "ceo", "president", "director", "principal", "partner",
}

// QualifiedLead is a dataset row that passed the decision-maker filter,
// annotated with the reason it qualified.
type QualifiedLead struct {
	Business
	QualificationReason string `json:"qualificationReason"`

	// Enrichment holds provider contact data attached by an Enricher.
	// Opaque; its internal shape is owned by the provider.
	Enrichment map[string]any `json:"enrichment,omitempty"`
}

// Qualifier filters a candidate dataset down to qualified decision-makers.
// Idempotent for identical input: same provider contents, same output order.
type Qualifier struct {
	provider      Provider
	titleKeywords []string
}

// NewQualifier creates a qualifier over the given provider. When keywords is
// empty the default decision-maker titles are used.
func NewQualifier(provider Provider, keywords ...string) *Qualifier {
	if len(keywords) == 0 {
		keywords = DefaultTitleKeywords
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &Qualifier{provider: provider, titleKeywords: lowered}
}

// FindAndQualify returns up to count leads whose contact title matches a
// decision-maker keyword, preserving dataset order. Extra keywords narrow
// the match: a title must hit the configured set and one of the extras, so
// extras can never qualify a title the configured set rejects.
func (q *Qualifier) FindAndQualify(ctx context.Context, count int, extraKeywords []string) ([]QualifiedLead, error) {
	if count <= 0 {
		count = 5
	}

	rows, err := q.provider.Businesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	extra := make([]string, 0, len(extraKeywords))
	for _, k := range extraKeywords {
		extra = append(extra, strings.ToLower(k))
	}

	qualified := make([]QualifiedLead, 0, count)
	for _, row := range rows {
		keyword, ok := matchTitle(row.ContactTitle, q.titleKeywords)
		if !ok {
			continue
		}
		if len(extra) > 0 {
			narrowed, ok := matchTitle(row.ContactTitle, extra)
			if !ok {
				continue
			}
			keyword = narrowed
		}
		qualified = append(qualified, QualifiedLead{
			Business: row,
			QualificationReason: fmt.Sprintf(
				"%s holds a decision-making title (%q matches %q) at %s, a %s business",
				row.ContactName, row.ContactTitle, keyword, row.Name, row.Industry),
		})
		if len(qualified) == count {
			break
		}
	}

	logging.LeadsDebug("Qualified %d/%d requested leads from %d candidates",
		len(qualified), count, len(rows))
	return qualified, nil
}

func matchTitle(title string, keywords []string) (string, bool) {
	lowered := strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(lowered, k) {
			return k, true
		}
	}
	return "", false
}
