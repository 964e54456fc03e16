package activity

import "sync"

// State is the presentation-facing view of request activity: whether a
// spinner should show and the message currently occupying the error area.
type State struct {
	Busy     bool
	InFlight int
	Message  string
}

// Tracker coordinates the request lifecycle shared by every feature flow:
// a request marks itself in flight before issuing and clears via the
// returned release regardless of outcome. Safe for concurrent use; client
// calls run on background goroutines.
type Tracker struct {
	mu       sync.RWMutex
	inFlight int
	message  string
}

// Begin marks one request in flight and returns its release. Releasing twice
// is a no-op.
func (t *Tracker) Begin() func() {
	t.mu.Lock()
	t.inFlight++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			if t.inFlight > 0 {
				t.inFlight--
			}
			t.mu.Unlock()
		})
	}
}

// Fail records the user-visible message for the most recent failure.
func (t *Tracker) Fail(message string) {
	t.mu.Lock()
	t.message = message
	t.mu.Unlock()
}

// Clear hides the error area.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.message = ""
	t.mu.Unlock()
}

// Snapshot returns the current activity state.
func (t *Tracker) Snapshot() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return State{
		Busy:     t.inFlight > 0,
		InFlight: t.inFlight,
		Message:  t.message,
	}
}
