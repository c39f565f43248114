package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmesoai/Omarim-AI-sub000/internal/delivery"
	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// Enricher annotates qualified leads with contact data from a provider.
// Absence of credentials is a valid, reportable outcome.
type Enricher interface {
	Enrich(ctx context.Context, leads []QualifiedLead) ([]QualifiedLead, delivery.Result)
}

// EnrichConfig configures the HTTP enricher.
type EnrichConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultEnrichConfig returns sensible defaults for an Apollo-style
// bulk-match API.
func DefaultEnrichConfig(apiKey string) EnrichConfig {
	return EnrichConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.apollo.io",
		Timeout: 30 * time.Second,
	}
}

// HTTPEnricher implements Enricher against a bulk contact-match REST API.
// Single attempt, best effort: a provider failure returns the leads
// unannotated alongside a failure result, never an error.
type HTTPEnricher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewHTTPEnricher creates an enricher. An empty API key is allowed; Enrich
// then reports a configuration-missing result instead of calling out.
func NewHTTPEnricher(cfg EnrichConfig) *HTTPEnricher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPEnricher{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type enrichRequest struct {
	Details []enrichDetail `json:"details"`
}

type enrichDetail struct {
	Email string `json:"email"`
}

type enrichResponse struct {
	Matches []map[string]any `json:"matches"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Enrich matches leads by contact email and attaches the provider's record
// to each matched lead.
func (e *HTTPEnricher) Enrich(ctx context.Context, in []QualifiedLead) ([]QualifiedLead, delivery.Result) {
	if e.apiKey == "" {
		logging.LeadsDebug("Enrichment skipped: no API key")
		return in, delivery.ConfigMissing("lead enrichment")
	}
	if len(in) == 0 {
		return in, delivery.Result{Success: true, Message: "no leads to enrich"}
	}

	details := make([]enrichDetail, len(in))
	for i, lead := range in {
		details[i] = enrichDetail{Email: lead.ContactEmail}
	}
	payload, err := json.Marshal(enrichRequest{Details: details})
	if err != nil {
		return in, delivery.Result{Success: false, Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/v1/people/bulk_match", bytes.NewReader(payload))
	if err != nil {
		return in, delivery.Result{Success: false, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return in, delivery.Result{Success: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return in, delivery.Result{Success: false, Message: fmt.Sprintf("failed to read response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return in, delivery.Result{Success: false, Message: fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, string(respBody))}
	}

	var enrichResp enrichResponse
	if err := json.Unmarshal(respBody, &enrichResp); err != nil {
		return in, delivery.Result{Success: false, Message: fmt.Sprintf("failed to parse response: %v", err)}
	}
	if enrichResp.Error != nil {
		return in, delivery.Result{Success: false, Message: "provider error: " + enrichResp.Error.Message}
	}

	byEmail := make(map[string]map[string]any, len(enrichResp.Matches))
	for _, match := range enrichResp.Matches {
		if email, ok := match["email"].(string); ok && email != "" {
			byEmail[email] = match
		}
	}

	out := make([]QualifiedLead, len(in))
	copy(out, in)
	enriched := 0
	for i := range out {
		if match, ok := byEmail[out[i].ContactEmail]; ok {
			out[i].Enrichment = match
			enriched++
		}
	}

	logging.Leads("Enriched %d/%d leads", enriched, len(out))
	return out, delivery.Result{
		Success: true,
		Message: fmt.Sprintf("enriched %d of %d leads", enriched, len(out)),
	}
}
