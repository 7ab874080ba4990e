package domain

import "time"

// AISender is the reserved sender name for assistant-authored chat messages.
const AISender = "AI"

// Message is one project chat entry.
type Message struct {
	Sender  string    `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
}

// FromAI reports whether the message was authored by the assistant.
func (m Message) FromAI() bool {
	return m.Sender == AISender
}
