package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
)

var _ interfaces.SessionsCache = (*SessionsCache)(nil)

// SessionsCache keeps per-user conversation state for the process lifetime.
// Locks are handed out per chat id, so requests of different users never
// contend.
type SessionsCache struct {
	sessions sync.Map
	locks    sync.Map
}

func NewSessionsCache() *SessionsCache {
	return &SessionsCache{
		sessions: sync.Map{},
		locks:    sync.Map{},
	}
}

func (cache *SessionsCache) Get(ctx context.Context, chatId int64) (*interfaces.Session, error) {
	value, ok := cache.sessions.Load(chatId)
	if !ok {
		return interfaces.NewSession(chatId), nil
	}
	session, ok := value.(interfaces.Session)
	if !ok {
		return nil, errors.New("cached session is in incorrect type")
	}
	return &session, nil
}

func (cache *SessionsCache) Save(ctx context.Context, session *interfaces.Session) error {
	cache.sessions.Store(session.ChatId(), *session)
	return nil
}

func (cache *SessionsCache) Clear(ctx context.Context, chatId int64) error {
	cache.sessions.Delete(chatId)
	return nil
}

func (cache *SessionsCache) AcquireLock(ctx context.Context, chatId int64) *sync.Mutex {
	mu := &sync.Mutex{}
	val, loaded := cache.locks.LoadOrStore(chatId, mu)
	if loaded {
		mu, _ = val.(*sync.Mutex)
	}
	return mu
}
