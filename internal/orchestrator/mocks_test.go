package orchestrator

import (
	"context"
	"sync"
	"testing"

	"github.com/mmesoai/Omarim-AI-sub000/internal/capability"
	"github.com/mmesoai/Omarim-AI-sub000/internal/delivery"
	"github.com/mmesoai/Omarim-AI-sub000/internal/funnel"
	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
	"github.com/mmesoai/Omarim-AI-sub000/internal/interpreter"
	"github.com/mmesoai/Omarim-AI-sub000/internal/leads"
	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
	"github.com/mmesoai/Omarim-AI-sub000/internal/store"
)

// mockClient answers every generation request with a fixed canned value per
// capability and counts calls per capability.
type mockClient struct {
	mu        sync.Mutex
	calls     map[string]int
	responses map[string]*generation.Result
	failOn    map[string]error
}

func newMockClient() *mockClient {
	m := &mockClient{
		calls:     make(map[string]int),
		responses: make(map[string]*generation.Result),
		failOn:    make(map[string]error),
	}
	for name, value := range cannedValues() {
		m.responses[name] = &generation.Result{Value: value}
	}
	return m
}

func (m *mockClient) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	m.mu.Lock()
	m.calls[req.Capability]++
	m.mu.Unlock()

	if err, ok := m.failOn[req.Capability]; ok {
		return nil, err
	}
	if res, ok := m.responses[req.Capability]; ok {
		return res, nil
	}
	return &generation.Result{Value: map[string]any{}}, nil
}

func (m *mockClient) callCount(capabilityName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[capabilityName]
}

func (m *mockClient) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func cannedValues() map[string]map[string]any {
	return map[string]map[string]any{
		"interpret_command": {
			"action":    "find_leads",
			"parameter": "",
		},
		"find_product_idea": {
			"productName":    "Local SEO Playbook",
			"description":    "A step-by-step SEO guide for local businesses.",
			"targetAudience": "local service businesses",
			"priceUSD":       float64(49),
		},
		"generate_content": {
			"title": "Win Local Search",
			"sections": []any{
				map[string]any{"heading": "Why it matters", "body": "Most customers search first."},
			},
			"callToAction": "Get the playbook",
		},
		"generate_landing_page": {
			"headline":    "Own Your Neighborhood",
			"subheadline": "The SEO playbook for local businesses",
			"bodyHTML":    "<p>Start ranking this week.</p>",
			"ctaText":     "Buy now",
		},
		"generate_social_posts": {
			"posts": []any{
				map[string]any{"platform": "twitter", "content": "Launch day!"},
			},
		},
		"draft_outreach_email": {
			"to":      "maria@harborlightsdental.example",
			"subject": "A better website for Harbor Lights",
			"body":    "Hi Maria, ...",
		},
		"answer_self_knowledge_question": {
			"answer": "I can find leads, generate content and launch products.",
		},
		"plan_campaign_action": {
			"summary": "Qualified five leads for outreach.",
		},
		"summarize_funnel": {
			"summary": "Launched Local SEO Playbook with content, landing page and posts.",
		},
	}
}

// harness wires a full orchestrator over mocked generation and unconfigured
// delivery collaborators.
type harness struct {
	orch    *Orchestrator
	client  *mockClient
	records *store.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	client := newMockClient()
	records := store.NewMemoryStore()
	t.Cleanup(func() { records.Close() })

	set := capability.NewSet(schema.NewRegistry(), client)
	capability.RegisterBuiltins(set, capability.Deps{
		Leads:   leads.NewQualifier(leads.NewStaticProvider(leads.DefaultDataset())),
		Email:   delivery.NewHTTPEmailSender(delivery.DefaultEmailConfig("")),
		Social:  delivery.NewNetworkPublisher(delivery.SocialConfig{}),
		Records: records,
		Blueprint: map[string]any{
			"product": "Omarim AI business co-pilot",
		},
	})

	orch, err := New(Config{
		Capabilities: set,
		Interpreter:  interpreter.New(client),
		Funnels:      funnel.Builtins(),
		Records:      records,
		Blueprint:    map[string]any{"product": "Omarim AI business co-pilot"},
	})
	if err != nil {
		t.Fatalf("failed to build orchestrator: %v", err)
	}
	return &harness{orch: orch, client: client, records: records}
}
