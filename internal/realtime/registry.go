// Package realtime tracks live client channels and delivers frames to them.
package realtime

import "sync"

// Channel is one live connection able to take a payload without blocking
type Channel interface {
	ID() string
	// Send enqueues payload and reports whether it was accepted; a full buffer drops it
	Send(payload []byte) bool
}

// Registry maps user ids to their live channels.
// Register and Unregister take the write lock and Notify the read lock, so a delivery never races a removal.
type Registry struct {
	mu     sync.RWMutex
	byUser map[uint64]map[string]Channel
	owner  map[string]uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[uint64]map[string]Channel),
		owner:  make(map[string]uint64),
	}
}

// Register attaches ch to userID, moving it if it was registered to another user
func (r *Registry) Register(userID uint64, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.owner[ch.ID()]; ok {
		r.removeLocked(prev, ch.ID())
	}

	set, ok := r.byUser[userID]
	if !ok {
		set = make(map[string]Channel)
		r.byUser[userID] = set
	}
	set[ch.ID()] = ch
	r.owner[ch.ID()] = userID
}

// Unregister detaches ch and reports whether it was registered; calling it twice is harmless
func (r *Registry) Unregister(ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.owner[ch.ID()]
	if !ok {
		return false
	}
	r.removeLocked(userID, ch.ID())
	return true
}

func (r *Registry) removeLocked(userID uint64, chID string) {
	delete(r.owner, chID)
	set := r.byUser[userID]
	delete(set, chID)
	if len(set) == 0 {
		delete(r.byUser, userID)
	}
}

// Notify offers payload to every channel of userID and reports whether at least one accepted it
func (r *Registry) Notify(userID uint64, payload []byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := false
	for _, ch := range r.byUser[userID] {
		if ch.Send(payload) {
			delivered = true
		}
	}
	return delivered
}

// Connections returns how many live channels userID has
func (r *Registry) Connections(userID uint64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID])
}

// Online reports whether userID has any live channel
func (r *Registry) Online(userID uint64) bool {
	return r.Connections(userID) > 0
}

// Count returns the number of live channels across all users
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owner)
}
