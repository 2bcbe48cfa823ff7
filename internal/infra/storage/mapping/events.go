package mapping

import (
	"fmt"
	"sync"
	"unicode/utf8"
)

// EventKind is the kind of correction applied while mapping
type EventKind string

const (
	EventClamp          EventKind = "clamp"
	EventCoercion       EventKind = "coercion"
	EventDerived        EventKind = "derived"
	EventDefault        EventKind = "default"
	EventReconciliation EventKind = "reconciliation"
)

// Event is one data-quality record. Field is the key the document used.
type Event struct {
	DocumentID string
	EntityType string
	Field      string
	RawValue   string
	Resolution string
	Kind       EventKind
}

// Observer receives mapping events. Implementations must be safe for concurrent use.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Observers fans an event out to several observers
type Observers []Observer

func (o Observers) Observe(e Event) {
	for _, obs := range o {
		if obs != nil {
			obs.Observe(e)
		}
	}
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// Recorder keeps events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything observed so far
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfKind returns the observed events of one kind
func (r *Recorder) OfKind(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// LogObserver writes clamps, coercions and reconciliation warnings at warn level,
// defaults and derived values at debug level
type LogObserver struct {
	log Logger
}

func NewLogObserver(log Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) Observe(e Event) {
	switch e.Kind {
	case EventClamp, EventCoercion, EventReconciliation:
		o.log.Warn("Mapping: %s %s/%s field=%s raw=%s resolution=%s",
			e.Kind, e.EntityType, e.DocumentID, e.Field, e.RawValue, e.Resolution)
	default:
		o.log.Debug("Mapping: %s %s/%s field=%s raw=%s resolution=%s",
			e.Kind, e.EntityType, e.DocumentID, e.Field, e.RawValue, e.Resolution)
	}
}

// MetricsObserver counts events per entity, kind and top-level canonical field.
// The full path stays in the log and the Recorder.
type MetricsObserver struct {
	metrics EventMetrics
}

func NewMetricsObserver(m EventMetrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) Observe(e Event) {
	o.metrics.IncMappingEvent(e.EntityType, string(e.Kind), MetricField(e.EntityType, e.Field))
}

const maxRawSummary = 80

// summarize renders a raw value for an event, truncated on a rune boundary
func summarize(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		s = "null"
	case string:
		s = fmt.Sprintf("%q", t)
	default:
		s = fmt.Sprintf("%v", t)
	}
	if len(s) > maxRawSummary {
		cut := maxRawSummary
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
