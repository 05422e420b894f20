package httpapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/mystery-keyboard/internal/game"
)

// errNotFound is returned for unknown session ids.
var errNotFound = errors.New("httpapi: session not found")

// entry is one remote player. session and feedback are only touched while
// holding mu; lastSeen is guarded by the sessions map lock.
type entry struct {
	mu       sync.Mutex
	id       string
	session  *game.Session
	feedback string

	lastSeen time.Time
}

// sessions is an in-memory map of live entries keyed by uuid.
// State is lost when the process restarts.
type sessions struct {
	mu sync.RWMutex
	m  map[string]*entry
}

func newSessions() *sessions {
	return &sessions{m: make(map[string]*entry)}
}

// add stores s under a fresh id.
func (st *sessions) add(s *game.Session) *entry {
	e := &entry{id: uuid.NewString(), session: s, lastSeen: time.Now()}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.m[e.id] = e
	return e
}

// get looks up an entry and marks it as used. Callers lock the entry
// themselves.
func (st *sessions) get(id string) (*entry, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if e, ok := st.m[id]; ok {
		e.lastSeen = time.Now()
		return e, nil
	}
	return nil, errNotFound
}

// sweep drops entries not used since cutoff and returns how many went.
func (st *sessions) sweep(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, e := range st.m {
		if e.lastSeen.Before(cutoff) {
			delete(st.m, id)
			n++
		}
	}
	return n
}

// len returns the number of live entries.
func (st *sessions) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.m)
}
