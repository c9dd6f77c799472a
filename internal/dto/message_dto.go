package dto

import "github.com/google/uuid"

// DocumentChangedMessage is the internal bus payload emitted after every
// document mutation. Consumers refresh the affected user's mirrors.
type DocumentChangedMessage struct {
	UserId uuid.UUID `json:"user_id"`
}
