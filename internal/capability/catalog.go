package capability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mmesoai/Omarim-AI-sub000/internal/delivery"
	"github.com/mmesoai/Omarim-AI-sub000/internal/generation"
	"github.com/mmesoai/Omarim-AI-sub000/internal/leads"
	"github.com/mmesoai/Omarim-AI-sub000/internal/schema"
	"github.com/mmesoai/Omarim-AI-sub000/internal/store"
)

// Deps are the collaborators composite capabilities delegate to.
type Deps struct {
	Leads   *leads.Qualifier
	Email   delivery.EmailSender
	Social  delivery.SocialPublisher
	Records store.RecordStore

	// Blueprint is the business ground-truth document consumed by the
	// self-knowledge capability. Opaque; its internal shape is owned by
	// whoever produced it.
	Blueprint map[string]any

	// Enricher annotates qualified leads when enrichment credentials are
	// present. Nil behaves as unconfigured.
	Enricher leads.Enricher
}

const systemPrompt = "You are Omarim AI, an autonomous business co-pilot. " +
	"Respond only with JSON matching the requested schema."

// ===== REGISTRATION =====

// RegisterBuiltins adds every built-in capability to the set and freezes the
// registry.
func RegisterBuiltins(set *Set, deps Deps) {
	registerDirect(set, deps)
	registerComposite(set, deps)
	set.Freeze()
}

func registerDirect(set *Set, deps Deps) {
	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "find_product_idea",
			Description: "Invent a sellable digital product for a business objective",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"objective": {Type: schema.TypeString, Required: true},
			},
			OutputShape: schema.Shape{
				"productName":    {Type: schema.TypeString, Required: true},
				"description":    {Type: schema.TypeString, Required: true},
				"targetAudience": {Type: schema.TypeString, Required: true},
				"priceUSD":       {Type: schema.TypeNumber, Required: true, Constraints: &schema.Constraints{Min: f(0)}},
			},
		},
		System: systemPrompt,
		Template: "Business objective: {{objective}}\n\n" +
			"Propose one concrete digital product that serves this objective. " +
			"Give it a short marketable name, a two-sentence description, a " +
			"specific target audience, and a realistic one-time price in USD.",
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "generate_content",
			Description: "Write long-form marketing content for a product",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"productName":    {Type: schema.TypeString, Required: true},
				"description":    {Type: schema.TypeString, Required: true},
				"targetAudience": {Type: schema.TypeString},
			},
			OutputShape: schema.Shape{
				"title": {Type: schema.TypeString, Required: true},
				"sections": {Type: schema.TypeArray, Required: true, Items: schema.Shape{
					"heading": {Type: schema.TypeString, Required: true},
					"body":    {Type: schema.TypeString, Required: true},
				}},
				"callToAction": {Type: schema.TypeString, Required: true},
			},
		},
		System: systemPrompt,
		Template: "Product: {{productName}}\nDescription: {{description}}\n" +
			"Audience: {{targetAudience}}\n\n" +
			"Write the core marketing content: a title, three to five sections " +
			"with headings, and a closing call to action.",
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "generate_landing_page",
			Description: "Produce landing-page copy for a product",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"productName":  {Type: schema.TypeString, Required: true},
				"description":  {Type: schema.TypeString, Required: true},
				"callToAction": {Type: schema.TypeString},
			},
			OutputShape: schema.Shape{
				"headline":    {Type: schema.TypeString, Required: true},
				"subheadline": {Type: schema.TypeString, Required: true},
				"bodyHTML":    {Type: schema.TypeString, Required: true},
				"ctaText":     {Type: schema.TypeString, Required: true},
			},
		},
		System: systemPrompt,
		Template: "Product: {{productName}}\nDescription: {{description}}\n" +
			"Call to action: {{callToAction}}\n\n" +
			"Write landing-page copy: a headline, a subheadline, the page body " +
			"as simple HTML, and a short button label.",
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "generate_social_posts",
			Description: "Draft social posts announcing a product",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"productName":    {Type: schema.TypeString, Required: true},
				"description":    {Type: schema.TypeString, Required: true},
				"targetAudience": {Type: schema.TypeString},
			},
			OutputShape: schema.Shape{
				"posts": {Type: schema.TypeArray, Required: true, Items: schema.Shape{
					"platform": {Type: schema.TypeString, Required: true},
					"content":  {Type: schema.TypeString, Required: true},
				}},
			},
		},
		System: systemPrompt,
		Template: "Product: {{productName}}\nDescription: {{description}}\n" +
			"Audience: {{targetAudience}}\n\n" +
			"Draft three short launch posts, one each for twitter, linkedin " +
			"and facebook.",
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "draft_outreach_email",
			Description: "Draft a personalized cold email to a qualified lead",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"lead":  {Type: schema.TypeOpaque, Required: true},
				"pitch": {Type: schema.TypeString},
			},
			OutputShape: schema.Shape{
				"to":      {Type: schema.TypeString, Required: true, Constraints: &schema.Constraints{Format: "email"}},
				"subject": {Type: schema.TypeString, Required: true},
				"body":    {Type: schema.TypeString, Required: true},
			},
		},
		System: systemPrompt,
		Template: "Lead: {{lead}}\nPitch: {{pitch}}\n\n" +
			"Draft a short, personal cold email to this lead's contact. Use " +
			"the lead's email address as the recipient. No placeholders; the " +
			"email must be ready to send verbatim.",
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "answer_self_knowledge_question",
			Description: "Answer a question about what Omarim can do",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"question":  {Type: schema.TypeString, Required: true},
				"blueprint": {Type: schema.TypeOpaque},
			},
			OutputShape: schema.Shape{
				"answer": {Type: schema.TypeString, Required: true},
			},
		},
		System: systemPrompt,
		Template: "Business blueprint (ground truth): {{blueprint}}\n\n" +
			"Question: {{question}}\n\n" +
			"Answer the question using only the blueprint. If you need the " +
			"live capability catalog, call the capability_lookup tool.",
		Tools: []generation.ToolDefinition{{
			Name:        "capability_lookup",
			Description: "List the registered capabilities with their descriptions",
			InputSchema: schema.Shape{
				"name": {Type: schema.TypeString},
			}.JSONSchema(),
		}},
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "plan_campaign_action",
			Description: "Choose the next campaign action for an objective",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"objective": {Type: schema.TypeString, Required: true},
			},
			OutputShape: schema.Shape{
				"summary": {Type: schema.TypeString, Required: true},
			},
		},
		System: systemPrompt,
		Template: "Objective: {{objective}}\n\n" +
			"Decide the single best next action for this objective and take it " +
			"by calling exactly one of the available tools. If no tool applies, " +
			"answer with a summary of what you would do instead.",
		Tools: []generation.ToolDefinition{
			{
				Name:        "qualify_leads",
				Description: "Find and qualify local-business leads by decision-maker title",
				InputSchema: schema.Shape{
					"count":    {Type: schema.TypeNumber},
					"keywords": {Type: schema.TypeArray},
				}.JSONSchema(),
			},
			{
				Name:        "send_outreach_email",
				Description: "Send one outreach email",
				InputSchema: schema.Shape{
					"to":      {Type: schema.TypeString, Required: true},
					"subject": {Type: schema.TypeString, Required: true},
					"body":    {Type: schema.TypeString, Required: true},
				}.JSONSchema(),
			},
			{
				Name:        "publish_social_post",
				Description: "Publish a post to a social platform",
				InputSchema: schema.Shape{
					"platform": {Type: schema.TypeString, Required: true},
					"content":  {Type: schema.TypeString, Required: true},
				}.JSONSchema(),
			},
			{
				Name:        "save_campaign_record",
				Description: "Persist campaign records to a named collection",
				InputSchema: schema.Shape{
					"collection": {Type: schema.TypeString, Required: true},
					"records":    {Type: schema.TypeArray, Required: true},
				}.JSONSchema(),
			},
		},
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "summarize_funnel",
			Description: "Summarize a completed funnel run for the user",
			Kind:        schema.KindDirect,
			InputShape: schema.Shape{
				"funnelId":    {Type: schema.TypeString, Required: true},
				"finalOutput": {Type: schema.TypeOpaque, Required: true},
			},
			OutputShape: schema.Shape{
				"summary": {Type: schema.TypeString, Required: true},
			},
		},
		System: systemPrompt,
		Template: "Funnel: {{funnelId}}\nResult: {{finalOutput}}\n\n" +
			"Summarize what was produced in two or three plain sentences " +
			"addressed to the business owner.",
	})
}

func registerComposite(set *Set, deps Deps) {
	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "qualify_leads",
			Description: "Filter the business dataset down to decision-maker leads",
			Kind:        schema.KindComposite,
			InputShape: schema.Shape{
				"count":    {Type: schema.TypeNumber, Constraints: &schema.Constraints{Min: f(1), Max: f(50)}},
				"keywords": {Type: schema.TypeArray},
			},
			OutputShape: schema.Shape{
				"leads": {Type: schema.TypeArray, Required: true, Items: schema.Shape{
					"name":                {Type: schema.TypeString, Required: true},
					"contactEmail":        {Type: schema.TypeString, Required: true},
					"qualificationReason": {Type: schema.TypeString, Required: true},
				}},
				"enrichment": {Type: schema.TypeObject, Required: true, Fields: deliveryResultShape()},
			},
		},
		Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			count := intField(input, "count")
			keywords := stringsField(input, "keywords")
			qualified, err := deps.Leads.FindAndQualify(ctx, count, keywords)
			if err != nil {
				return nil, err
			}
			enrichRes := delivery.ConfigMissing("lead enrichment")
			if deps.Enricher != nil {
				qualified, enrichRes = deps.Enricher.Enrich(ctx, qualified)
			}
			rows, err := toAnyMaps(qualified)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"leads":      rows,
				"enrichment": deliveryResultFields(enrichRes),
			}, nil
		},
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "send_outreach_email",
			Description: "Send one outreach email through the delivery collaborator",
			Kind:        schema.KindComposite,
			InputShape: schema.Shape{
				"to":      {Type: schema.TypeString, Required: true, Constraints: &schema.Constraints{Format: "email"}},
				"subject": {Type: schema.TypeString, Required: true},
				"body":    {Type: schema.TypeString, Required: true},
			},
			OutputShape: deliveryResultShape(),
		},
		Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			res := deps.Email.Send(ctx,
				input["to"].(string), input["subject"].(string), input["body"].(string))
			return deliveryResultFields(res), nil
		},
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "publish_social_post",
			Description: "Publish one post, or broadcast several, to social platforms",
			Kind:        schema.KindComposite,
			InputShape: schema.Shape{
				"platform": {Type: schema.TypeString},
				"content":  {Type: schema.TypeString},
				"posts": {Type: schema.TypeArray, Items: schema.Shape{
					"platform": {Type: schema.TypeString, Required: true},
					"content":  {Type: schema.TypeString, Required: true},
				}},
			},
			OutputShape: schema.Shape{
				"success": {Type: schema.TypeBoolean, Required: true},
				"message": {Type: schema.TypeString, Required: true},
				"results": {Type: schema.TypeArray},
			},
		},
		Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			posts := postsFromInput(input)
			if len(posts) == 0 {
				return nil, fmt.Errorf("either platform+content or a posts list is required")
			}
			results, err := delivery.Broadcast(ctx, deps.Social, posts)
			if err != nil {
				return nil, err
			}
			rows, err := toAnyMaps(results)
			if err != nil {
				return nil, err
			}
			success := true
			message := fmt.Sprintf("published %d post(s)", len(results))
			for _, r := range results {
				if !r.Success {
					success = false
					message = r.Message
					break
				}
			}
			return map[string]any{"success": success, "message": message, "results": rows}, nil
		},
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "capability_lookup",
			Description: "List registered capabilities and their descriptions",
			Kind:        schema.KindComposite,
			InputShape: schema.Shape{
				"name": {Type: schema.TypeString},
			},
			OutputShape: schema.Shape{
				"capabilities": {Type: schema.TypeArray, Required: true, Items: schema.Shape{
					"name":        {Type: schema.TypeString, Required: true},
					"description": {Type: schema.TypeString, Required: true},
					"kind":        {Type: schema.TypeString, Required: true},
				}},
			},
		},
		Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			want, _ := input["name"].(string)
			var rows []any
			for _, name := range set.Registry().Names() {
				if want != "" && name != want {
					continue
				}
				d := set.Registry().Get(name)
				rows = append(rows, map[string]any{
					"name":        d.Name,
					"description": d.Description,
					"kind":        string(d.Kind),
				})
			}
			return map[string]any{"capabilities": rows}, nil
		},
	})

	set.MustAdd(&Capability{
		Descriptor: &schema.Descriptor{
			Name:        "save_campaign_record",
			Description: "Persist campaign records as one atomic batch",
			Kind:        schema.KindComposite,
			InputShape: schema.Shape{
				"collection": {Type: schema.TypeString, Required: true},
				"records":    {Type: schema.TypeArray, Required: true},
			},
			OutputShape: schema.Shape{
				"ids": {Type: schema.TypeArray, Required: true},
			},
		},
		Run: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			rows, _ := input["records"].([]any)
			inputs := make([]store.RecordInput, 0, len(rows))
			for i, row := range rows {
				fields, ok := row.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("record %d is not an object", i)
				}
				id, _ := fields["id"].(string)
				inputs = append(inputs, store.RecordInput{ID: id, Fields: fields})
			}
			ids, err := deps.Records.SaveRecords(ctx, input["collection"].(string), inputs)
			if err != nil {
				return nil, err
			}
			out := make([]any, len(ids))
			for i, id := range ids {
				out[i] = id
			}
			return map[string]any{"ids": out}, nil
		},
	})
}

// ===== HELPERS =====

func deliveryResultShape() schema.Shape {
	return schema.Shape{
		"success":       {Type: schema.TypeBoolean, Required: true},
		"message":       {Type: schema.TypeString, Required: true},
		"notConfigured": {Type: schema.TypeBoolean},
	}
}

func deliveryResultFields(res delivery.Result) map[string]any {
	out := map[string]any{"success": res.Success, "message": res.Message}
	if res.NotConfigured {
		out["notConfigured"] = true
	}
	return out
}

func postsFromInput(input map[string]any) []delivery.Post {
	if raw, ok := input["posts"].([]any); ok && len(raw) > 0 {
		posts := make([]delivery.Post, 0, len(raw))
		for _, item := range raw {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			platform, _ := obj["platform"].(string)
			content, _ := obj["content"].(string)
			posts = append(posts, delivery.Post{Platform: platform, Content: content})
		}
		return posts
	}
	platform, _ := input["platform"].(string)
	content, _ := input["content"].(string)
	if platform == "" || content == "" {
		return nil
	}
	return []delivery.Post{{Platform: platform, Content: content}}
}

func intField(input map[string]any, key string) int {
	switch n := input[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	default:
		return 0
	}
}

func stringsField(input map[string]any, key string) []string {
	raw, ok := input[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// toAnyMaps converts a typed slice to the []any of map[string]any form shape
// checks operate on, via a JSON round trip.
func toAnyMaps(v any) ([]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out []any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func f(v float64) *float64 { return &v }
