package metrics

import "github.com/rigado/attmon/display"

type countingSink struct {
	next display.Sink
	m    *Metrics
}

// Sink counts error events on their way to next.
func Sink(next display.Sink, m *Metrics) display.Sink {
	if m == nil {
		return next
	}
	return &countingSink{next: next, m: m}
}

func (s *countingSink) Emit(e display.Event) {
	if e.Kind == display.KindError {
		s.m.DecodeErrors.WithLabelValues(e.Err).Inc()
	}
	s.next.Emit(e)
}
