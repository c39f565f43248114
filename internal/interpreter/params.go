package interpreter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Params is the decoded, per-action payload of an interpreted command. The
// concrete type is keyed by the command's action, so downstream code never
// reads a field before knowing which action it belongs to.
type Params interface {
	isParams()
}

// AgentParams backs run_autonomous_agent.
type AgentParams struct {
	Objective string `json:"objective"`
}

// SelfKnowledgeParams backs answer_self_knowledge_question.
type SelfKnowledgeParams struct {
	Question string `json:"question"`
}

// FunnelParams backs launch_product_funnel.
type FunnelParams struct {
	Objective string `json:"objective"`
}

// FindLeadsParams backs find_leads.
type FindLeadsParams struct {
	Count    int      `json:"count"`
	Keywords []string `json:"keywords"`
}

// ContentParams backs generate_content.
type ContentParams struct {
	ProductName    string `json:"productName"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
}

// ColdEmailParams backs send_cold_email.
type ColdEmailParams struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SocialPostParams backs publish_social_post.
type SocialPostParams struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

func (AgentParams) isParams()         {}
func (SelfKnowledgeParams) isParams() {}
func (FunnelParams) isParams()        {}
func (FindLeadsParams) isParams()     {}
func (ContentParams) isParams()       {}
func (ColdEmailParams) isParams()     {}
func (SocialPostParams) isParams()    {}

// DecodeParams turns a command's opaque parameter string into the typed
// payload for its action. A parameter that looks like a JSON object is
// parsed as one; anything else fills the action's primary free-text field.
// Unrecognized commands carry no payload and decode to nil.
func DecodeParams(cmd *InterpretedCommand) (Params, error) {
	raw := strings.TrimSpace(cmd.Parameter)
	structured := strings.HasPrefix(raw, "{")

	decode := func(dst Params) (Params, error) {
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return nil, fmt.Errorf("parameter for %s is not a valid JSON object: %w", cmd.Action, err)
		}
		return dst, nil
	}

	switch cmd.Action {
	case ActionRunAutonomousAgent:
		if structured {
			return decode(&AgentParams{})
		}
		return &AgentParams{Objective: raw}, nil
	case ActionAnswerSelfKnowledge:
		if structured {
			return decode(&SelfKnowledgeParams{})
		}
		return &SelfKnowledgeParams{Question: raw}, nil
	case ActionLaunchProductFunnel:
		if structured {
			return decode(&FunnelParams{})
		}
		return &FunnelParams{Objective: raw}, nil
	case ActionFindLeads:
		if structured {
			return decode(&FindLeadsParams{})
		}
		return &FindLeadsParams{}, nil
	case ActionGenerateContent:
		if structured {
			return decode(&ContentParams{})
		}
		return &ContentParams{ProductName: raw, Description: raw}, nil
	case ActionSendColdEmail:
		if !structured {
			return nil, fmt.Errorf("send_cold_email requires a JSON parameter with to, subject and body")
		}
		return decode(&ColdEmailParams{})
	case ActionPublishSocialPost:
		if structured {
			return decode(&SocialPostParams{})
		}
		return &SocialPostParams{Platform: "twitter", Content: raw}, nil
	case ActionUnrecognized:
		return nil, nil
	default:
		return nil, fmt.Errorf("no payload type for action %q", cmd.Action)
	}
}
