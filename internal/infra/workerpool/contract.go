package workerpool

import "time"

// Metrics получает состояние пула. Реализуется pkg/metrics.
type Metrics interface {
	SetPoolInFlight(n int)
	SetPoolQueued(n int)
	IncPoolRejected()
	ObservePoolCall(d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) SetPoolInFlight(int)           {}
func (noopMetrics) SetPoolQueued(int)             {}
func (noopMetrics) IncPoolRejected()              {}
func (noopMetrics) ObservePoolCall(time.Duration) {}
