package display

import "sync"

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of what has been recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Find returns the first event with the given kind and label.
func (r *Recorder) Find(k Kind, label string) (Event, bool) {
	for _, e := range r.Events() {
		if e.Kind == k && e.Label == label {
			return e, true
		}
	}
	return Event{}, false
}

// Kinds returns the events of a kind in order.
func (r *Recorder) Kinds(k Kind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
