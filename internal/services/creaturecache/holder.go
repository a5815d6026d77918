package creaturecache

import "sync/atomic"

// Holder publishes the current snapshot. Readers never block and never see
// a partially built snapshot.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder returns an empty holder
func NewHolder() *Holder {
	return &Holder{}
}

// Load returns the published snapshot, or nil before the first build
func (h *Holder) Load() *Snapshot {
	return h.current.Load()
}

// Store publishes a snapshot. Only the refresher calls it.
func (h *Holder) Store(s *Snapshot) {
	h.current.Store(s)
}
