package memory

import (
	"time"

	"kurazhelp-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// TranscriptRepository keeps per-user conversation transcripts in process
// memory. Transcripts are session-scoped: they expire on inactivity and are
// dropped on logout.
type TranscriptRepository struct {
	cache *cache.Cache
}

func NewTranscriptRepository() *TranscriptRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &TranscriptRepository{
		cache: c,
	}
}

func (r *TranscriptRepository) Save(userID string, transcript *store.Transcript) {
	r.cache.Set(userID, transcript, cache.DefaultExpiration)
}

func (r *TranscriptRepository) Get(userID string) (*store.Transcript, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Transcript), true
	}
	return nil, false
}

func (r *TranscriptRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
