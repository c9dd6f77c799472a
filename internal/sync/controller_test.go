package sync

import (
	"context"
	"testing"
	"time"

	"kurazhelp-be/internal/entity"
	"kurazhelp-be/internal/repository/contract"
	"kurazhelp-be/internal/repository/specification"
	"kurazhelp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubLogger struct{}

func (stubLogger) Debug(string, string, map[string]interface{}) {}
func (stubLogger) Info(string, string, map[string]interface{})  {}
func (stubLogger) Warn(string, string, map[string]interface{})  {}
func (stubLogger) Error(string, string, map[string]interface{}) {}
func (stubLogger) Sync() error                                  { return nil }

// blockingDocRepo parks FindAll until release is closed.
type blockingDocRepo struct {
	release chan struct{}
	docs    []*entity.Document
}

func (r *blockingDocRepo) Create(context.Context, *entity.Document) error        { return nil }
func (r *blockingDocRepo) Update(context.Context, *entity.Document) error        { return nil }
func (r *blockingDocRepo) Delete(context.Context, uuid.UUID) error               { return nil }
func (r *blockingDocRepo) DeleteAllByUserId(context.Context, uuid.UUID) error    { return nil }
func (r *blockingDocRepo) FindOne(context.Context, ...specification.Specification) (*entity.Document, error) {
	return nil, nil
}
func (r *blockingDocRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Document, error) {
	<-r.release
	return r.docs, nil
}
func (r *blockingDocRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type stubUow struct {
	docs contract.DocumentRepository
}

func (u *stubUow) Begin(context.Context) error                           { return nil }
func (u *stubUow) Commit() error                                         { return nil }
func (u *stubUow) Rollback() error                                       { return nil }
func (u *stubUow) UserRepository() contract.UserRepository               { return nil }
func (u *stubUow) DocumentRepository() contract.DocumentRepository       { return u.docs }
func (u *stubUow) PreferenceRepository() contract.PreferenceRepository   { return nil }
func (u *stubUow) SystemLogRepository() contract.SystemLogRepository     { return nil }

type stubFactory struct {
	docs contract.DocumentRepository
}

func (f *stubFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &stubUow{docs: f.docs}
}

func TestAttachDoesNotBlockOnLoad(t *testing.T) {
	repo := &blockingDocRepo{
		release: make(chan struct{}),
		docs:    []*entity.Document{{Id: uuid.New(), Title: "doc"}},
	}
	c := NewController(&stubFactory{docs: repo}, stubLogger{}, nil)
	s := NewSession(uuid.New(), func([]byte) error { return nil })

	attached := make(chan struct{})
	go func() {
		c.Attach(context.Background(), s)
		close(attached)
	}()

	// Attach must return while the document query is still outstanding.
	select {
	case <-attached:
	case <-time.After(time.Second):
		t.Fatal("Attach blocked on the document load")
	}
	assert.Equal(t, StateLoading, s.State())

	close(repo.release)

	deadline := time.Now().Add(time.Second)
	for s.State() != StateReady {
		if time.Now().After(deadline) {
			t.Fatal("session never became ready after the load completed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	assert.Len(t, s.Mirror(), 1)
}
