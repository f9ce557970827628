package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Turn is one utterance in a conversation: either the user's question or
// the assistant's answer.
type Turn struct {
	Role      string
	Text      string
	CreatedAt time.Time
}

// ConversationRepository keeps per-session turn history in memory with a
// TTL. History is presentation context for the model call, never grounding
// material, so losing it on expiry is harmless.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Sessions idle for an hour expire; expired entries are purged every
	// 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Append(sessionID string, turns ...Turn) {
	history, _ := r.Get(sessionID)
	history = append(history, turns...)
	r.cache.Set(sessionID, history, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(sessionID string) ([]Turn, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.([]Turn), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
