package pantry

import (
	"strconv"
	"sync"
)

// inflight is the set of operations currently running, keyed by operation
// identity. A key is released by the operation itself once its write landed,
// never by a timer.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{keys: make(map[string]struct{})}
}

// acquire marks key as running. It returns false when it already was.
func (f *inflight) acquire(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[key]; busy {
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

func (f *inflight) release(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
}

func (f *inflight) busy(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keys[key]
	return ok
}

func itemKey(listID, itemID string) string { return listID + "\x00" + itemID }

func productKey(listID string, productID int) string {
	return listID + "\x00#" + strconv.Itoa(productID)
}
