package compliance

import (
	"io"
	"testing"

	"CallingHome/internal/message"

	"github.com/stretchr/testify/assert"
)

type scriptedInput struct {
	lines []string
	reads int
}

func (s *scriptedInput) ReadLine() (string, error) {
	if s.reads >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.reads]
	s.reads++
	return line, nil
}

func TestChecklistFor(t *testing.T) {
	sms := ChecklistFor(message.ChannelSMS)
	email := ChecklistFor(message.ChannelEmail)

	assert.Len(t, sms.Items, 5)
	assert.Len(t, email.Items, 5)
	assert.NotEqual(t, sms.Title, email.Title)
	assert.Contains(t, sms.Title, "SMS")
	assert.Contains(t, email.Title, "Email")
	assert.Equal(t, sms, ChecklistFor(message.ChannelSMS))
}

func TestChecklistForReturnsCopy(t *testing.T) {
	first := ChecklistFor(message.ChannelEmail)
	first.Items[0] = "changed"

	assert.NotEqual(t, "changed", ChecklistFor(message.ChannelEmail).Items[0])
}

func TestRequireAcknowledgement(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  bool
	}{
		{"exact phrase", []string{"I AGREE"}, true},
		{"lower case", []string{"i agree"}, true},
		{"mixed case", []string{"I Agree"}, true},
		{"trailing space", []string{"I AGREE "}, true},
		{"yes", []string{"yes"}, false},
		{"empty", []string{""}, false},
		{"no input", nil, false},
		{"reads only one line", []string{"nope", "I AGREE"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &scriptedInput{lines: tt.input}
			assert.Equal(t, tt.want, RequireAcknowledgement(in))
			if len(tt.input) > 0 {
				assert.Equal(t, 1, in.reads)
			}
		})
	}
}
