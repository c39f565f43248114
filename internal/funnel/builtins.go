package funnel

// Builtins returns the funnels declared at startup.
func Builtins() map[string]*Definition {
	defs := []*Definition{
		{
			ID:          "digital_product",
			Description: "Invent a digital product, then produce its content, landing page and launch posts",
			Steps: []Step{
				{
					Capability: "find_product_idea",
					Inputs: map[string]Binding{
						"objective": {FromObjective: true},
					},
				},
				{
					Capability: "generate_content",
					Inputs: map[string]Binding{
						"productName":    {FromStep: &FieldRef{Step: 0, Field: "productName"}},
						"description":    {FromStep: &FieldRef{Step: 0, Field: "description"}},
						"targetAudience": {FromStep: &FieldRef{Step: 0, Field: "targetAudience"}},
					},
				},
				{
					Capability: "generate_landing_page",
					Inputs: map[string]Binding{
						"productName":  {FromStep: &FieldRef{Step: 0, Field: "productName"}},
						"description":  {FromStep: &FieldRef{Step: 0, Field: "description"}},
						"callToAction": {FromStep: &FieldRef{Step: 1, Field: "callToAction"}},
					},
				},
				{
					Capability: "generate_social_posts",
					Inputs: map[string]Binding{
						"productName":    {FromStep: &FieldRef{Step: 0, Field: "productName"}},
						"description":    {FromStep: &FieldRef{Step: 0, Field: "description"}},
						"targetAudience": {FromStep: &FieldRef{Step: 0, Field: "targetAudience"}},
					},
				},
			},
			Output: []OutputField{
				{Name: "productName", From: FieldRef{Step: 0, Field: "productName"}},
				{Name: "priceUSD", From: FieldRef{Step: 0, Field: "priceUSD"}},
				{Name: "contentTitle", From: FieldRef{Step: 1, Field: "title"}},
				{Name: "landingHeadline", From: FieldRef{Step: 2, Field: "headline"}},
				{Name: "posts", From: FieldRef{Step: 3, Field: "posts"}},
			},
			SummaryCapability: "summarize_funnel",
			SummaryTemplate: "Launched {{productName}} at ${{priceUSD}}: content " +
				"({{contentTitle}}), a landing page ({{landingHeadline}}) and social posts are ready.",
		},
		{
			ID:          "lead_outreach",
			Description: "Qualify leads, draft a personal email to the best one, and send it",
			Steps: []Step{
				{
					Capability: "qualify_leads",
					Inputs: map[string]Binding{
						"count": {Literal: float64(1)},
					},
				},
				{
					Capability: "draft_outreach_email",
					Inputs: map[string]Binding{
						"lead":  {FromStep: &FieldRef{Step: 0, Field: "leads"}},
						"pitch": {FromObjective: true},
					},
				},
				{
					Capability: "send_outreach_email",
					Inputs: map[string]Binding{
						"to":      {FromStep: &FieldRef{Step: 1, Field: "to"}},
						"subject": {FromStep: &FieldRef{Step: 1, Field: "subject"}},
						"body":    {FromStep: &FieldRef{Step: 1, Field: "body"}},
					},
				},
			},
			Output: []OutputField{
				{Name: "leads", From: FieldRef{Step: 0, Field: "leads"}},
				{Name: "subject", From: FieldRef{Step: 1, Field: "subject"}},
				{Name: "delivered", From: FieldRef{Step: 2, Field: "success"}},
			},
			SummaryTemplate: "Outreach email {{subject}} prepared; delivered={{delivered}}.",
		},
	}

	out := make(map[string]*Definition, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out
}
