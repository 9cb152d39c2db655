package session

import (
	"errors"
	"strings"
	"time"

	"CallingHome/internal/compliance"
	"CallingHome/internal/message"

	"github.com/google/uuid"
)

// DefaultSender is used until the user sets a sender name
const DefaultSender = "Your Name"

var (
	ErrEmptyValue              = errors.New("value must not be empty")
	ErrMissingLocation         = errors.New("city and state must be set before generating")
	ErrAcknowledgementDeclined = errors.New("compliance acknowledgement not provided")
)

// AckFunc shows the checklist and reports whether the user agreed to it
type AckFunc func(compliance.Checklist) bool

// Session holds the settings of one interactive run.
// It is owned by the menu loop and lives only as long as the process.
type Session struct {
	ID        string
	StartTime time.Time

	sender       string
	city         string
	state        string
	audience     message.Audience
	channel      message.Channel
	lastMessage  string
	acknowledged bool
}

// New creates a session with default settings
func New(sender string) *Session {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		sender = DefaultSender
	}
	return &Session{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		sender:    sender,
		audience:  message.AudienceLawyer,
		channel:   message.ChannelSMS,
	}
}

func (s *Session) Sender() string                  { return s.sender }
func (s *Session) City() string                    { return s.city }
func (s *Session) State() string                   { return s.state }
func (s *Session) Audience() message.Audience      { return s.audience }
func (s *Session) Channel() message.Channel        { return s.channel }
func (s *Session) LastMessage() string             { return s.lastMessage }
func (s *Session) HasMessage() bool                { return s.lastMessage != "" }
func (s *Session) Acknowledged() bool              { return s.acknowledged }
func (s *Session) Location() string                { return message.Location(s.city, s.state) }
func (s *Session) Checklist() compliance.Checklist { return compliance.ChecklistFor(s.channel) }

// SetSender replaces the sender name
func (s *Session) SetSender(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyValue
	}
	s.sender = name
	return nil
}

// SetLocation replaces city and state and clears the acknowledgement
func (s *Session) SetLocation(city, state string) error {
	city, state = strings.TrimSpace(city), strings.TrimSpace(state)
	if city == "" || state == "" {
		return ErrEmptyValue
	}
	s.city, s.state = city, state
	s.acknowledged = false
	return nil
}

// SetAudience replaces the audience and clears the acknowledgement
func (s *Session) SetAudience(a message.Audience) {
	s.audience = a
	s.acknowledged = false
}

// SetChannel replaces the channel and clears the acknowledgement.
// The checklist depends on the channel, so a prior agreement no longer applies.
func (s *Session) SetChannel(c message.Channel) {
	s.channel = c
	s.acknowledged = false
}

// Context returns the template input for the current settings
func (s *Session) Context() message.Context {
	return message.Context{
		SenderName: s.sender,
		City:       s.city,
		State:      s.state,
		Audience:   s.audience,
		Channel:    s.channel,
	}
}

// Generate builds a message for the current settings and stores it as the
// last message. If the session is not yet acknowledged, ack is called with
// the channel's checklist first; a refusal leaves the session untouched.
func (s *Session) Generate(ack AckFunc) (string, error) {
	if s.city == "" || s.state == "" {
		return "", ErrMissingLocation
	}

	if !s.acknowledged {
		if ack == nil || !ack(s.Checklist()) {
			return "", ErrAcknowledgementDeclined
		}
		s.acknowledged = true
	}

	s.lastMessage = message.BuildOptIn(s.Context())
	return s.lastMessage, nil
}
