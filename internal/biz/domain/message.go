package domain

import "time"

// TimeLayout is the timestamp format used by export message lists.
const TimeLayout = "2006-01-02 15:04:05"

// Message represents one entry of a conversation's message list. Lists are
// ordered newest-first in the export.
type Message struct {
	ID          string
	Timestamp   string
	Contents    string
	Attachments string // raw attachment URLs, comma or newline separated
}

// Time parses the message timestamp.
func (m *Message) Time() (time.Time, error) {
	return time.Parse(TimeLayout, m.Timestamp)
}

// HasContent reports whether the message carries any text.
func (m *Message) HasContent() bool {
	return m.Contents != ""
}

// HasAttachments reports whether the message references any attachment.
func (m *Message) HasAttachments() bool {
	return m.Attachments != ""
}
