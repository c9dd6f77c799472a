package store

import "time"

// Turn is a single entry in a conversation transcript.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the in-memory conversation state kept for a single user.
// The leading system turn is stored separately from the visible history so
// the history can be replayed to the client without it.
type Transcript struct {
	System  Turn   `json:"system"`
	History []Turn `json:"history"`
}

// Append adds a visible turn to the transcript history.
func (t *Transcript) Append(role, content string) {
	t.History = append(t.History, Turn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}
