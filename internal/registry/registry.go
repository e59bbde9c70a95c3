// Package registry tracks which authenticated users currently hold live
// transport connections. It is the only shared mutable state in the dispatch
// core: the websocket layer binds and unbinds connections, the alert dispatch
// engine reads it to fan alerts out. A user may hold several connections at
// once (one per device).
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"
)

// ErrConnectionGone reports a push attempt against a handle that is no longer
// bound. Dispatch treats it as "this handle unreachable", never as fatal.
var ErrConnectionGone = errors.New("registry: connection gone")

// PushFunc delivers one payload over a live connection. Implementations must
// be safe for concurrent use; the websocket conn serializes its own writes.
type PushFunc func(payload []byte) error

type connection struct {
	userID        domain.UserID
	establishedAt time.Time
	push          PushFunc
}

type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnectionID]*connection
	users map[domain.UserID]map[domain.ConnectionID]struct{}
}

func New() *Registry {
	return &Registry{
		conns: make(map[domain.ConnectionID]*connection),
		users: make(map[domain.UserID]map[domain.ConnectionID]struct{}),
	}
}

// Bind registers a live connection for userID. Rebinding an already-bound
// handle replaces its user association.
func (r *Registry) Bind(id domain.ConnectionID, userID domain.UserID, push PushFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.conns[id]; ok {
		r.dropUserRef(prev.userID, id)
	}
	r.conns[id] = &connection{
		userID:        userID,
		establishedAt: time.Now().UTC(),
		push:          push,
	}
	set, ok := r.users[userID]
	if !ok {
		set = make(map[domain.ConnectionID]struct{})
		r.users[userID] = set
	}
	set[id] = struct{}{}
}

// Unbind removes the connection. Unknown handles are a no-op: disconnects
// race with everything else and must never fail.
func (r *Registry) Unbind(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[id]
	if !ok {
		return
	}
	delete(r.conns, id)
	r.dropUserRef(conn.userID, id)
}

// caller holds r.mu
func (r *Registry) dropUserRef(userID domain.UserID, id domain.ConnectionID) {
	set, ok := r.users[userID]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(r.users, userID)
	}
}

func (r *Registry) IsOnline(userID domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users[userID]) > 0
}

func (r *Registry) ConnectionsFor(userID domain.UserID) []domain.ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.users[userID]
	out := make([]domain.ConnectionID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// Push delivers payload over the named connection. The push function is
// captured under the read lock but invoked outside it, so a slow transport
// write never stalls binds or other reads. A handle that vanished between
// lookup and write surfaces as a transport error from the push itself.
func (r *Registry) Push(id domain.ConnectionID, payload []byte) error {
	r.mu.RLock()
	conn, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return ErrConnectionGone
	}
	return conn.push(payload)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func (r *Registry) UserCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *Registry) Users() []domain.UserID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.UserID, 0, len(r.users))
	for id := range r.users {
		out = append(out, id)
	}
	return out
}

// UserFor reports which user a handle is bound to.
func (r *Registry) UserFor(id domain.ConnectionID) (domain.UserID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[id]
	if !ok {
		return domain.UserID{}, false
	}
	return conn.userID, true
}
