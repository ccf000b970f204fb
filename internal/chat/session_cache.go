package chat

import (
	"sync"
	"time"
)

type sessionEntry struct {
	session      *Session
	lastAccessed time.Time
}

// SessionCache keeps one live Session per user id, evicting the least
// recently used entry when full. Evicting a session discards its buffer,
// which is the page-reload analogue for that user.
type SessionCache struct {
	lock     sync.Mutex
	sessions map[string]*sessionEntry
	maxSize  int
}

func NewSessionCache(maxSize int) *SessionCache {
	return &SessionCache{
		sessions: make(map[string]*sessionEntry, maxSize),
		maxSize:  maxSize,
	}
}

// Get returns the cached session for userID, creating one if absent.
func (cache *SessionCache) Get(userID string, assistant Assistant) *Session {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	entry, exists := cache.sessions[userID]
	if exists {
		entry.lastAccessed = time.Now()
		return entry.session
	}

	if len(cache.sessions) >= cache.maxSize {
		oldestID := ""
		var oldestTime time.Time
		for id, e := range cache.sessions {
			if oldestID == "" || e.lastAccessed.Before(oldestTime) {
				oldestID = id
				oldestTime = e.lastAccessed
			}
		}
		delete(cache.sessions, oldestID)
	}

	session := NewSession(assistant)
	cache.sessions[userID] = &sessionEntry{
		session:      session,
		lastAccessed: time.Now(),
	}
	return session
}

// Reset drops the session for userID so the next access starts with an empty
// buffer.
func (cache *SessionCache) Reset(userID string) {
	cache.lock.Lock()
	defer cache.lock.Unlock()
	delete(cache.sessions, userID)
}
