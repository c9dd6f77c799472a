package sync

import (
	"context"
	"encoding/json"
	"sync"

	"kurazhelp-be/internal/entity"
	"kurazhelp-be/internal/pkg/logger"
	"kurazhelp-be/internal/repository/specification"
	"kurazhelp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const docChangedChannel = "kurazhelp:doc-changed"

type docChangedMessage struct {
	InstanceId string    `json:"instance_id"`
	UserId     uuid.UUID `json:"user_id"`
}

// Controller owns every live document mirror on this instance. Document
// mutations notify it, it reloads the affected user's documents once, and
// pushes a fresh snapshot to each of that user's sessions. A Redis channel
// propagates change notifications between instances.
type Controller struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
	redis      *redis.Client
	instanceId string

	mu       sync.RWMutex
	sessions map[uuid.UUID][]*Session
}

func NewController(uowFactory unitofwork.RepositoryFactory, log logger.ILogger, redisClient *redis.Client) *Controller {
	return &Controller{
		uowFactory: uowFactory,
		log:        log,
		redis:      redisClient,
		instanceId: uuid.NewString(),
		sessions:   make(map[uuid.UUID][]*Session),
	}
}

// Attach registers a session and kicks off its initial load. The load runs
// in its own goroutine so callers (the hub's select loop) never wait on the
// database.
func (c *Controller) Attach(ctx context.Context, s *Session) {
	c.mu.Lock()
	c.sessions[s.UserId] = append(c.sessions[s.UserId], s)
	c.mu.Unlock()

	s.BeginLoading()
	if err := s.PushSnapshot(); err != nil {
		c.log.Warn("sync", "failed to push loading snapshot", map[string]interface{}{"error": err.Error()})
	}

	go c.reload(ctx, s)
}

// Detach removes a session. Its mirror is discarded with it.
func (c *Controller) Detach(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.sessions[s.UserId]
	for i, existing := range list {
		if existing == s {
			c.sessions[s.UserId] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(c.sessions[s.UserId]) == 0 {
		delete(c.sessions, s.UserId)
	}
}

// NotifyChange is called after any document mutation. It refreshes local
// sessions and fans the notification out to other instances.
func (c *Controller) NotifyChange(ctx context.Context, userId uuid.UUID) {
	c.Refresh(ctx, userId)

	if c.redis == nil {
		return
	}
	payload, err := json.Marshal(docChangedMessage{InstanceId: c.instanceId, UserId: userId})
	if err != nil {
		return
	}
	if err := c.redis.Publish(ctx, docChangedChannel, payload).Err(); err != nil {
		c.log.Warn("sync", "failed to publish doc-changed to redis", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

// Refresh reloads the mirror for every local session of userId and pushes
// new snapshots.
func (c *Controller) Refresh(ctx context.Context, userId uuid.UUID) {
	c.mu.RLock()
	list := make([]*Session, len(c.sessions[userId]))
	copy(list, c.sessions[userId])
	c.mu.RUnlock()

	if len(list) == 0 {
		return
	}

	docs, err := c.loadDocuments(ctx, userId)
	if err != nil {
		c.log.Error("sync", "failed to load documents for refresh", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		// A failed load still leaves sessions interactive with an empty
		// mirror rather than stuck in loading.
		docs = nil
	}

	for _, s := range list {
		s.ApplyMirror(docs)
		if err := s.PushSnapshot(); err != nil {
			c.log.Warn("sync", "failed to push snapshot", map[string]interface{}{
				"session_id": s.Id,
				"error":      err.Error(),
			})
		}
	}
}

// Select changes a session's active document and pushes the updated snapshot.
func (c *Controller) Select(s *Session, id uuid.UUID) {
	if !s.Select(id) {
		c.log.Warn("sync", "select for unknown document ignored", map[string]interface{}{
			"session_id":  s.Id,
			"document_id": id,
		})
		return
	}
	if err := s.PushSnapshot(); err != nil {
		c.log.Warn("sync", "failed to push snapshot after select", map[string]interface{}{
			"session_id": s.Id,
			"error":      err.Error(),
		})
	}
}

// Run subscribes to the cross-instance change channel. Blocks until ctx is
// cancelled; run it in its own goroutine.
func (c *Controller) Run(ctx context.Context) {
	if c.redis == nil {
		return
	}

	sub := c.redis.Subscribe(ctx, docChangedChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload docChangedMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				continue
			}
			if payload.InstanceId == c.instanceId {
				continue // our own publish, already refreshed
			}
			c.Refresh(ctx, payload.UserId)
		}
	}
}

func (c *Controller) reload(ctx context.Context, s *Session) {
	docs, err := c.loadDocuments(ctx, s.UserId)
	if err != nil {
		c.log.Error("sync", "initial document load failed", map[string]interface{}{
			"user_id": s.UserId,
			"error":   err.Error(),
		})
		docs = nil
	}

	s.ApplyMirror(docs)
	if err := s.PushSnapshot(); err != nil {
		c.log.Warn("sync", "failed to push initial snapshot", map[string]interface{}{
			"session_id": s.Id,
			"error":      err.Error(),
		})
	}
}

func (c *Controller) loadDocuments(ctx context.Context, userId uuid.UUID) ([]*entity.Document, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().FindAll(ctx,
		specification.DocumentOwnedByUser{UserID: userId},
		specification.ByLastEditedDesc{},
	)
}
