package websocket

import (
	"testing"

	"kurazhelp-be/internal/entity"
	syncpkg "kurazhelp-be/internal/sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	c := &Client{UserID: uuid.New(), Send: make(chan []byte, 1)}
	c.Session = syncpkg.NewSession(c.UserID, c.enqueue)
	return c
}

func TestEnqueueDeliversWhileOpen(t *testing.T) {
	client := newTestClient()
	client.Session.ApplyMirror([]*entity.Document{{Id: uuid.New(), Title: "a"}})

	require.NoError(t, client.Session.PushSnapshot())

	select {
	case payload := <-client.Send:
		assert.Contains(t, string(payload), `"snapshot"`)
	default:
		t.Fatal("expected a snapshot on the send buffer")
	}
}

func TestSnapshotAfterDisconnectDoesNotPanic(t *testing.T) {
	client := newTestClient()
	client.Session.ApplyMirror(nil)

	// A refresh racing a disconnect may still hold the session and push a
	// snapshot after the hub shut the channel. It must drop, not panic.
	client.closeSend()

	assert.NotPanics(t, func() {
		require.NoError(t, client.Session.PushSnapshot())
	})
}

func TestCloseSendIsIdempotent(t *testing.T) {
	client := newTestClient()

	assert.NotPanics(t, func() {
		client.closeSend()
		client.closeSend()
	})
}
