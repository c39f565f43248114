package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParamsFreeText(t *testing.T) {
	p, err := DecodeParams(&InterpretedCommand{
		Action:    ActionRunAutonomousAgent,
		Parameter: "Find me 5 local businesses",
	})
	require.NoError(t, err)
	agent, ok := p.(*AgentParams)
	require.True(t, ok)
	assert.Equal(t, "Find me 5 local businesses", agent.Objective)
}

func TestDecodeParamsStructured(t *testing.T) {
	p, err := DecodeParams(&InterpretedCommand{
		Action:    ActionFindLeads,
		Parameter: `{"count": 3, "keywords": ["owner"]}`,
	})
	require.NoError(t, err)
	find, ok := p.(*FindLeadsParams)
	require.True(t, ok)
	assert.Equal(t, 3, find.Count)
	assert.Equal(t, []string{"owner"}, find.Keywords)
}

func TestDecodeParamsInvalidJSON(t *testing.T) {
	_, err := DecodeParams(&InterpretedCommand{
		Action:    ActionFindLeads,
		Parameter: `{"count": `,
	})
	assert.Error(t, err)
}

func TestDecodeParamsColdEmailRequiresStructure(t *testing.T) {
	_, err := DecodeParams(&InterpretedCommand{
		Action:    ActionSendColdEmail,
		Parameter: "send an email to maria",
	})
	require.Error(t, err)

	p, err := DecodeParams(&InterpretedCommand{
		Action:    ActionSendColdEmail,
		Parameter: `{"to":"maria@example.com","subject":"Hi","body":"Hello"}`,
	})
	require.NoError(t, err)
	email := p.(*ColdEmailParams)
	assert.Equal(t, "maria@example.com", email.To)
}

func TestDecodeParamsSocialPostDefaultsPlatform(t *testing.T) {
	p, err := DecodeParams(&InterpretedCommand{
		Action:    ActionPublishSocialPost,
		Parameter: "Launch day!",
	})
	require.NoError(t, err)
	post := p.(*SocialPostParams)
	assert.Equal(t, "twitter", post.Platform)
	assert.Equal(t, "Launch day!", post.Content)
}

func TestDecodeParamsUnrecognized(t *testing.T) {
	p, err := DecodeParams(&InterpretedCommand{Action: ActionUnrecognized, Parameter: "???"})
	require.NoError(t, err)
	assert.Nil(t, p)
}
