// Package interpreter classifies a free-text utterance into one action from
// a closed set, with an extracted parameter string.
package interpreter

// Action is one of the registered action names.
type Action string

const (
	ActionRunAutonomousAgent  Action = "run_autonomous_agent"
	ActionAnswerSelfKnowledge Action = "answer_self_knowledge_question"
	ActionLaunchProductFunnel Action = "launch_product_funnel"
	ActionFindLeads           Action = "find_leads"
	ActionGenerateContent     Action = "generate_content"
	ActionSendColdEmail       Action = "send_cold_email"
	ActionPublishSocialPost   Action = "publish_social_post"

	// ActionUnrecognized is the terminal fallback for classifications that
	// fall outside the registered set. A normal outcome, not an error.
	ActionUnrecognized Action = "unrecognized"
)

// Actions returns the registered action names, excluding the unrecognized
// fallback. The order is the order they are presented to the classifier.
func Actions() []Action {
	return []Action{
		ActionRunAutonomousAgent,
		ActionAnswerSelfKnowledge,
		ActionLaunchProductFunnel,
		ActionFindLeads,
		ActionGenerateContent,
		ActionSendColdEmail,
		ActionPublishSocialPost,
	}
}

// Valid reports whether a is a registered action (the fallback included).
func (a Action) Valid() bool {
	if a == ActionUnrecognized {
		return true
	}
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

// descriptions feed the classification prompt; each line tells the backend
// when to choose an action.
var descriptions = map[Action]string{
	ActionRunAutonomousAgent:  "the user asks the agent to autonomously find, research or act on business prospects or campaigns",
	ActionAnswerSelfKnowledge: "the user asks what this assistant can do, how it works, or about its own features",
	ActionLaunchProductFunnel: "the user asks to create and launch a digital product end to end",
	ActionFindLeads:           "the user asks to find, list or qualify sales leads",
	ActionGenerateContent:     "the user asks for marketing copy, articles or content for a product",
	ActionSendColdEmail:       "the user asks to send an outreach or cold email",
	ActionPublishSocialPost:   "the user asks to post or publish to a social network",
}
