package sync

import (
	"encoding/json"
	"testing"
	"time"

	"kurazhelp-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDoc(title string) *entity.Document {
	return &entity.Document{
		Id:         uuid.New(),
		Title:      title,
		Content:    "content of " + title,
		WordCount:  3,
		CreatedAt:  time.Now(),
		LastEdited: time.Now(),
	}
}

func TestNewSessionStartsUninitialized(t *testing.T) {
	s := NewSession(uuid.New(), nil)
	assert.Equal(t, StateUninitialized, s.State())
	assert.Nil(t, s.ActiveId())
}

func TestApplyMirrorSelectsFirstDocument(t *testing.T) {
	s := NewSession(uuid.New(), nil)
	a, b := makeDoc("a"), makeDoc("b")

	s.ApplyMirror([]*entity.Document{a, b})

	assert.Equal(t, StateReady, s.State())
	require.NotNil(t, s.ActiveId())
	assert.Equal(t, a.Id, *s.ActiveId())
}

func TestApplyMirrorKeepsSurvivingSelection(t *testing.T) {
	s := NewSession(uuid.New(), nil)
	a, b := makeDoc("a"), makeDoc("b")

	s.ApplyMirror([]*entity.Document{a, b})
	require.True(t, s.Select(b.Id))

	// A fresh delivery with b still present keeps b selected.
	s.ApplyMirror([]*entity.Document{a, b})
	require.NotNil(t, s.ActiveId())
	assert.Equal(t, b.Id, *s.ActiveId())
}

func TestApplyMirrorFallsBackWhenActiveDeleted(t *testing.T) {
	s := NewSession(uuid.New(), nil)
	a, b := makeDoc("a"), makeDoc("b")

	s.ApplyMirror([]*entity.Document{a, b})
	require.True(t, s.Select(b.Id))

	// b was deleted from another session; the controller falls to index 0.
	s.ApplyMirror([]*entity.Document{a})
	require.NotNil(t, s.ActiveId())
	assert.Equal(t, a.Id, *s.ActiveId())
}

func TestApplyMirrorEmptyClearsSelection(t *testing.T) {
	s := NewSession(uuid.New(), nil)
	a := makeDoc("a")

	s.ApplyMirror([]*entity.Document{a})
	require.NotNil(t, s.ActiveId())

	// Deleting the only document leaves no selection.
	s.ApplyMirror(nil)
	assert.Nil(t, s.ActiveId())
	assert.Equal(t, StateReady, s.State())
	assert.Empty(t, s.Mirror())
}

func TestSelectUnknownIdIgnored(t *testing.T) {
	s := NewSession(uuid.New(), nil)
	a := makeDoc("a")
	s.ApplyMirror([]*entity.Document{a})

	assert.False(t, s.Select(uuid.New()))
	require.NotNil(t, s.ActiveId())
	assert.Equal(t, a.Id, *s.ActiveId())
}

func TestPushSnapshotSerializesMirror(t *testing.T) {
	var got []byte
	s := NewSession(uuid.New(), func(payload []byte) error {
		got = payload
		return nil
	})

	a := makeDoc("a")
	s.ApplyMirror([]*entity.Document{a})
	require.NoError(t, s.PushSnapshot())

	var msg struct {
		Type     string     `json:"type"`
		State    string     `json:"state"`
		ActiveId *uuid.UUID `json:"active_id"`
		Docs     []struct {
			Id        uuid.UUID `json:"id"`
			Title     string    `json:"title"`
			WordCount int       `json:"word_count"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(got, &msg))

	assert.Equal(t, "snapshot", msg.Type)
	assert.Equal(t, "ready", msg.State)
	require.NotNil(t, msg.ActiveId)
	assert.Equal(t, a.Id, *msg.ActiveId)
	require.Len(t, msg.Docs, 1)
	assert.Equal(t, "a", msg.Docs[0].Title)
	assert.Equal(t, 3, msg.Docs[0].WordCount)
}

func TestPushSnapshotLoadingState(t *testing.T) {
	var got []byte
	s := NewSession(uuid.New(), func(payload []byte) error {
		got = payload
		return nil
	})

	s.BeginLoading()
	require.NoError(t, s.PushSnapshot())

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(got, &msg))
	assert.Equal(t, "loading", msg["state"])
}
