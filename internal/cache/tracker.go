package cache

// Tracker flushes a Store to disk every interval changed entries.
type Tracker struct {
	store    *Store
	interval int
	pending  int
}

// NewTracker wraps s. An interval below 1 saves after every change.
func NewTracker(s *Store, interval int) *Tracker {
	if interval < 1 {
		interval = 1
	}
	return &Tracker{store: s, interval: interval}
}

// Record stores the fingerprint and reports whether the entry changed.
func (t *Tracker) Record(key, fingerprint string) (bool, error) {
	if !t.store.Put(key, fingerprint) {
		return false, nil
	}
	t.pending++
	if t.pending >= t.interval {
		t.pending = 0
		return true, t.store.Save()
	}
	return true, nil
}

// Flush saves whatever is still pending.
func (t *Tracker) Flush() error {
	t.pending = 0
	return t.store.Save()
}
