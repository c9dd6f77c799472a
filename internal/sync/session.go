package sync

import (
	"encoding/json"
	"sync"
	"time"

	"kurazhelp-be/internal/entity"

	"github.com/google/uuid"
)

// State is the lifecycle of a session's document mirror.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
)

// snapshotDocument is the wire form of one mirrored document.
type snapshotDocument struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	WordCount  int       `json:"word_count"`
	CreatedAt  time.Time `json:"created_at"`
	LastEdited time.Time `json:"last_edited"`
}

type snapshotMessage struct {
	Type      string             `json:"type"`
	State     State              `json:"state"`
	ActiveId  *uuid.UUID         `json:"active_id"`
	Documents []snapshotDocument `json:"documents"`
}

// Session is the per-connection live mirror of one user's documents. Every
// delivery replaces the mirror wholesale; the mirror is never patched in
// place by local mutations.
type Session struct {
	Id     uuid.UUID
	UserId uuid.UUID

	mu       sync.Mutex
	state    State
	mirror   []*entity.Document
	activeId *uuid.UUID
	sink     func(payload []byte) error
}

func NewSession(userId uuid.UUID, sink func(payload []byte) error) *Session {
	return &Session{
		Id:     uuid.New(),
		UserId: userId,
		state:  StateUninitialized,
		sink:   sink,
	}
}

// State returns the current mirror state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ActiveId returns the currently selected document id, or nil.
func (s *Session) ActiveId() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeId == nil {
		return nil
	}
	id := *s.activeId
	return &id
}

// Mirror returns the current document snapshot.
func (s *Session) Mirror() []*entity.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Document, len(s.mirror))
	copy(out, s.mirror)
	return out
}

// BeginLoading moves the session into the loading state.
func (s *Session) BeginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading
}

// ApplyMirror replaces the mirror with a fresh delivery and re-selects the
// active document: keep the current selection when it survived, otherwise
// fall to the first document, otherwise none.
func (s *Session) ApplyMirror(docs []*entity.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mirror = docs
	s.state = StateReady

	if s.activeId != nil {
		for _, d := range docs {
			if d.Id == *s.activeId {
				return
			}
		}
	}

	if len(docs) > 0 {
		id := docs[0].Id
		s.activeId = &id
	} else {
		s.activeId = nil
	}
}

// Select changes the active document. Selecting an id not present in the
// mirror is ignored.
func (s *Session) Select(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.mirror {
		if d.Id == id {
			s.activeId = &id
			return true
		}
	}
	return false
}

// PushSnapshot serializes the current mirror and hands it to the sink.
func (s *Session) PushSnapshot() error {
	s.mu.Lock()

	msg := snapshotMessage{
		Type:      "snapshot",
		State:     s.state,
		ActiveId:  s.activeId,
		Documents: make([]snapshotDocument, len(s.mirror)),
	}
	for i, d := range s.mirror {
		msg.Documents[i] = snapshotDocument{
			Id:         d.Id,
			Title:      d.Title,
			Content:    d.Content,
			WordCount:  d.WordCount,
			CreatedAt:  d.CreatedAt,
			LastEdited: d.LastEdited,
		}
	}
	sink := s.sink
	s.mu.Unlock()

	if sink == nil {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return sink(payload)
}
