package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		city, state string
		want        string
	}{
		{"Austin", "TX", "Austin, TX"},
		{"", "TX", "TX"},
		{"Austin", "", "Austin"},
		{"", "", ""},
		{"  San Antonio ", " TX ", "San Antonio, TX"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Location(tt.city, tt.state))
		})
	}
}

func TestBuildOptInIsDeterministic(t *testing.T) {
	for _, a := range Audiences {
		for _, c := range Channels {
			ctx := Context{SenderName: "Pat", City: "Austin", State: "TX", Audience: a, Channel: c}
			t.Run(a.String()+"/"+c.String(), func(t *testing.T) {
				first := BuildOptIn(ctx)
				second := BuildOptIn(ctx)
				assert.Equal(t, first, second)
				assert.Contains(t, first, "Pat")
				assert.Contains(t, first, "Austin, TX")
			})
		}
	}
}

func TestBuildOptInSMS(t *testing.T) {
	lawyer := BuildOptIn(Context{SenderName: "Pat", City: "Austin", State: "TX", Audience: AudienceLawyer, Channel: ChannelSMS})
	lawmaker := BuildOptIn(Context{SenderName: "Pat", City: "Austin", State: "TX", Audience: AudienceLawmaker, Channel: ChannelSMS})

	for _, msg := range []string{lawyer, lawmaker} {
		assert.Contains(t, msg, "YES")
		assert.Contains(t, msg, "NO")
		assert.NotContains(t, msg, "\n")
		assert.False(t, strings.HasPrefix(msg, "SUBJECT:"))
	}
	assert.Contains(t, lawyer, "brief professional inquiry relevant to Austin, TX")
	assert.Contains(t, lawmaker, "civic/professional inquiry relevant to Austin, TX")
}

func TestBuildOptInEmail(t *testing.T) {
	tests := []struct {
		audience Audience
		subject  string
	}{
		{AudienceLawyer, "Permission Request – One Brief Message"},
		{AudienceLawmaker, "Quick Opt-In Request"},
	}

	for _, tt := range tests {
		t.Run(tt.audience.String(), func(t *testing.T) {
			msg := BuildOptIn(Context{SenderName: "Pat", City: "Denver", State: "CO", Audience: tt.audience, Channel: ChannelEmail})

			require.True(t, strings.HasPrefix(msg, "SUBJECT: "))
			parts := strings.SplitN(msg, "\n\n", 2)
			require.Len(t, parts, 2)
			assert.Equal(t, "SUBJECT: "+tt.subject, parts[0])
			assert.NotContains(t, parts[0], "\n")

			body := parts[1]
			assert.True(t, strings.HasPrefix(body, "Hello,"))
			assert.Contains(t, body, "Denver, CO")
			assert.Contains(t, body, "I will not follow up")
			assert.True(t, strings.HasSuffix(body, "Respectfully,\nPat\n"))
		})
	}
}

func TestBuildOptInEmptyLocation(t *testing.T) {
	msg := BuildOptIn(Context{SenderName: "Pat", Audience: AudienceLawyer, Channel: ChannelSMS})
	assert.Contains(t, msg, "relevant to . ")
	assert.NotContains(t, msg, ", .")
}

func TestParseAudienceAndChannel(t *testing.T) {
	a, err := ParseAudience(" Lawmaker ")
	require.NoError(t, err)
	assert.Equal(t, AudienceLawmaker, a)

	_, err = ParseAudience("judge")
	assert.Error(t, err)

	c, err := ParseChannel("EMAIL")
	require.NoError(t, err)
	assert.Equal(t, ChannelEmail, c)

	_, err = ParseChannel("fax")
	assert.Error(t, err)

	assert.Equal(t, "sms", ChannelSMS.String())
	assert.Equal(t, "lawyer", AudienceLawyer.String())
}
