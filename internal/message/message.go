package message

import (
	"fmt"
	"strings"
)

// Audience is who the opt-in request is addressed to
type Audience int

const (
	AudienceLawyer Audience = iota
	AudienceLawmaker
)

// Audiences lists every audience in menu order
var Audiences = []Audience{AudienceLawyer, AudienceLawmaker}

func (a Audience) String() string {
	switch a {
	case AudienceLawyer:
		return "lawyer"
	case AudienceLawmaker:
		return "lawmaker"
	default:
		return fmt.Sprintf("audience(%d)", int(a))
	}
}

// ParseAudience converts a menu label into an Audience
func ParseAudience(s string) (Audience, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lawyer":
		return AudienceLawyer, nil
	case "lawmaker":
		return AudienceLawmaker, nil
	default:
		return 0, fmt.Errorf("unknown audience: %q", s)
	}
}

// Channel is the medium the message is written for
type Channel int

const (
	ChannelSMS Channel = iota
	ChannelEmail
)

// Channels lists every channel in menu order
var Channels = []Channel{ChannelSMS, ChannelEmail}

func (c Channel) String() string {
	switch c {
	case ChannelSMS:
		return "sms"
	case ChannelEmail:
		return "email"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// ParseChannel converts a menu label into a Channel
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sms":
		return ChannelSMS, nil
	case "email":
		return ChannelEmail, nil
	default:
		return 0, fmt.Errorf("unknown channel: %q", s)
	}
}

// Context carries everything needed to build one opt-in message
type Context struct {
	SenderName string
	City       string
	State      string
	Audience   Audience
	Channel    Channel
}

// Location joins city and state with ", ", skipping empty parts
func Location(city, state string) string {
	parts := make([]string, 0, 2)
	if c := strings.TrimSpace(city); c != "" {
		parts = append(parts, c)
	}
	if s := strings.TrimSpace(state); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// BuildOptIn renders the opt-in request for the given context.
// SMS output is a single paragraph; email output is "SUBJECT: ..." followed
// by a blank line and the body.
func BuildOptIn(ctx Context) string {
	loc := Location(ctx.City, ctx.State)

	if ctx.Channel == ChannelSMS {
		return buildSMS(ctx.SenderName, loc, ctx.Audience)
	}
	subject, body := buildEmail(ctx.SenderName, loc, ctx.Audience)
	return "SUBJECT: " + subject + "\n\n" + body
}

func buildSMS(sender, loc string, audience Audience) string {
	if audience == AudienceLawmaker {
		return fmt.Sprintf("Hello, this is %s. I’m reaching out with a brief civic/professional inquiry relevant to %s. "+
			"May I send one short follow-up message? Reply YES to opt in or NO to decline. Thank you.", sender, loc)
	}
	return fmt.Sprintf("Hello, this is %s. I have a brief professional inquiry relevant to %s. "+
		"May I have your permission to send one short follow-up message by text or email? "+
		"Reply YES to opt in or NO to decline. Thank you.", sender, loc)
}

func buildEmail(sender, loc string, audience Audience) (string, string) {
	var b strings.Builder
	b.WriteString("Hello,\n\n")

	subject := "Permission Request – One Brief Message"
	if audience == AudienceLawmaker {
		subject = "Quick Opt-In Request"
		fmt.Fprintf(&b, "My name is %s. I’m reaching out with a brief civic/professional inquiry relevant to your role in %s.\n\n", sender, loc)
		b.WriteString("Before sharing details, may I have your permission to send one short follow-up email?\n\n")
	} else {
		fmt.Fprintf(&b, "My name is %s, and I’m reaching out with a brief professional inquiry relevant to %s.\n\n", sender, loc)
		b.WriteString("Before I share details, may I have your permission to send one short follow-up message by email?\n\n")
	}

	b.WriteString("Reply YES to opt in, or reply NO to decline (and I will not follow up).\n\n")
	fmt.Fprintf(&b, "Respectfully,\n%s\n", sender)
	return subject, b.String()
}
