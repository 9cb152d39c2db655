package session

import (
	"strings"
	"testing"

	"CallingHome/internal/compliance"
	"CallingHome/internal/message"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agree(compliance.Checklist) bool   { return true }
func decline(compliance.Checklist) bool { return false }

func TestNewDefaults(t *testing.T) {
	s := New("")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, DefaultSender, s.Sender())
	assert.Empty(t, s.City())
	assert.Empty(t, s.State())
	assert.Equal(t, message.AudienceLawyer, s.Audience())
	assert.Equal(t, message.ChannelSMS, s.Channel())
	assert.False(t, s.HasMessage())
	assert.False(t, s.Acknowledged())
	assert.NotEqual(t, s.ID, New("").ID)
}

func TestSetSender(t *testing.T) {
	s := New("Pat")
	assert.ErrorIs(t, s.SetSender("   "), ErrEmptyValue)
	assert.Equal(t, "Pat", s.Sender())

	require.NoError(t, s.SetSender(" Jordan "))
	assert.Equal(t, "Jordan", s.Sender())
}

func TestSettingsResetAcknowledgement(t *testing.T) {
	changes := map[string]func(*Session){
		"location":     func(s *Session) { _ = s.SetLocation("Austin", "TX") },
		"audience":     func(s *Session) { s.SetAudience(message.AudienceLawmaker) },
		"channel":      func(s *Session) { s.SetChannel(message.ChannelEmail) },
		"same channel": func(s *Session) { s.SetChannel(message.ChannelSMS) },
	}

	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			s := New("Pat")
			require.NoError(t, s.SetLocation("Denver", "CO"))
			_, err := s.Generate(agree)
			require.NoError(t, err)
			require.True(t, s.Acknowledged())

			change(s)
			assert.False(t, s.Acknowledged())
		})
	}
}

func TestSetLocationRejectsEmpty(t *testing.T) {
	s := New("Pat")
	require.NoError(t, s.SetLocation("Denver", "CO"))

	assert.ErrorIs(t, s.SetLocation("", "CO"), ErrEmptyValue)
	assert.ErrorIs(t, s.SetLocation("Denver", " "), ErrEmptyValue)
	assert.Equal(t, "Denver, CO", s.Location())
}

func TestGenerateWithoutLocation(t *testing.T) {
	s := New("Pat")
	called := false

	_, err := s.Generate(func(compliance.Checklist) bool {
		called = true
		return true
	})

	assert.ErrorIs(t, err, ErrMissingLocation)
	assert.False(t, called)
	assert.Empty(t, s.LastMessage())
	assert.False(t, s.Acknowledged())
}

func TestGenerateKeepsPreviousMessageWhenBlocked(t *testing.T) {
	s := New("Pat")
	require.NoError(t, s.SetLocation("Denver", "CO"))
	first, err := s.Generate(agree)
	require.NoError(t, err)

	s.SetChannel(message.ChannelEmail)
	_, err = s.Generate(decline)

	assert.ErrorIs(t, err, ErrAcknowledgementDeclined)
	assert.Equal(t, first, s.LastMessage())
	assert.False(t, s.Acknowledged())
}

func TestGenerateDeclined(t *testing.T) {
	s := New("Pat")
	require.NoError(t, s.SetLocation("Denver", "CO"))

	_, err := s.Generate(decline)
	assert.ErrorIs(t, err, ErrAcknowledgementDeclined)
	assert.False(t, s.Acknowledged())
	assert.Empty(t, s.LastMessage())

	_, err = s.Generate(nil)
	assert.ErrorIs(t, err, ErrAcknowledgementDeclined)
}

func TestGenerateShowsChannelChecklist(t *testing.T) {
	s := New("Pat")
	require.NoError(t, s.SetLocation("Denver", "CO"))
	s.SetChannel(message.ChannelEmail)

	var seen compliance.Checklist
	_, err := s.Generate(func(cl compliance.Checklist) bool {
		seen = cl
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, compliance.ChecklistFor(message.ChannelEmail), seen)
}

func TestGenerateAsksOnlyOnceWhileAcknowledged(t *testing.T) {
	s := New("Pat")
	require.NoError(t, s.SetLocation("Denver", "CO"))

	calls := 0
	ack := func(compliance.Checklist) bool {
		calls++
		return true
	}
	_, err := s.Generate(ack)
	require.NoError(t, err)
	_, err = s.Generate(ack)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestGenerateEmailForLawyer(t *testing.T) {
	s := New("Pat")
	require.NoError(t, s.SetLocation("Denver", "CO"))
	s.SetChannel(message.ChannelEmail)
	s.SetAudience(message.AudienceLawyer)

	msg, err := s.Generate(func(compliance.Checklist) bool {
		return compliance.IsAgreement("I AGREE")
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(msg, "SUBJECT: Permission Request – One Brief Message"))
	assert.Contains(t, msg, "Denver, CO")
	assert.Equal(t, msg, s.LastMessage())
	assert.True(t, s.Acknowledged())
}
