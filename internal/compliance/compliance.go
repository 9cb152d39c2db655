package compliance

import (
	"strings"

	"CallingHome/internal/message"
)

// AgreementPhrase is the exact answer that unlocks message generation
const AgreementPhrase = "I AGREE"

// AcknowledgementPrompt is shown before reading the agreement answer
const AcknowledgementPrompt = "Type I AGREE to confirm you will use this tool in a compliant way: "

// Checklist is a titled list of advisory items shown before generating
type Checklist struct {
	Title string
	Items []string
}

var smsChecklist = Checklist{
	Title: "SMS Consent Checklist (TCPA-aligned best practices)",
	Items: []string{
		"You have a lawful reason to initiate contact (e.g., existing relationship, inbound request, or verified permission).",
		"You are NOT using an autodialer/robocall system to blast unsolicited messages.",
		"Your first message is an opt-in request (asks permission before follow-up).",
		"Your message includes clear decline language (reply NO) and you honor it.",
		"You keep a do-not-contact list and do not re-contact opted-out numbers.",
	},
}

var emailChecklist = Checklist{
	Title: "Email Checklist (CAN-SPAM-aligned best practices)",
	Items: []string{
		"You have a lawful basis to email (professional inquiry or opt-in request; avoid deceptive subjects).",
		"You use honest identification (who you are) and avoid misleading headers.",
		"If you later send marketing/promotional emails, include: physical mailing address + clear unsubscribe.",
		"You do not continue emailing after a NO/opt-out request.",
		"You keep basic logs of consent and outreach attempts for auditability.",
	},
}

// ChecklistFor returns the checklist for a channel. The result is a copy.
func ChecklistFor(ch message.Channel) Checklist {
	src := emailChecklist
	if ch == message.ChannelSMS {
		src = smsChecklist
	}
	items := make([]string, len(src.Items))
	copy(items, src.Items)
	return Checklist{Title: src.Title, Items: items}
}

// LineReader yields one line of user input at a time
type LineReader interface {
	ReadLine() (string, error)
}

// IsAgreement reports whether answer matches the agreement phrase,
// ignoring case and surrounding whitespace
func IsAgreement(answer string) bool {
	return strings.ToUpper(strings.TrimSpace(answer)) == AgreementPhrase
}

// RequireAcknowledgement reads a single line and reports whether the user agreed.
// A read error counts as a refusal.
func RequireAcknowledgement(in LineReader) bool {
	line, err := in.ReadLine()
	if err != nil {
		return false
	}
	return IsAgreement(line)
}
