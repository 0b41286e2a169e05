package dispatch

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/uiflow/internal/ui"
)

// Metrics collects dispatch statistics. Reads may come from another
// goroutine, such as a status display, so access is synchronized.
type Metrics struct {
	mu sync.RWMutex

	kindMetrics map[string]*KindMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalDuration   time.Duration
}

// KindMetrics holds metrics for one event kind.
type KindMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	StoppedCount  uint64
	CapturedCount uint64
	FallbackCount uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		kindMetrics: make(map[string]*KindMetrics),
	}
}

func (m *Metrics) kind(name string) *KindMetrics {
	km := m.kindMetrics[name]
	if km == nil {
		km = &KindMetrics{Name: name}
		m.kindMetrics[name] = km
	}
	return km
}

// RecordDispatch records a completed dispatch.
func (m *Metrics) RecordDispatch(evt *ui.Event, route Route, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	km := m.kind(evt.Kind().Name())
	km.DispatchCount++
	km.TotalDuration += duration
	km.LastDispatch = time.Now()
	if duration > km.MaxDuration {
		km.MaxDuration = duration
	}
	if evt.IsPropagationStopped() {
		km.StoppedCount++
	}
	if route.Captured {
		km.CapturedCount++
	}
	if evt.LegacySurfaceFallback() {
		km.FallbackCount++
	}
}

// RecordError records a rejected dispatch.
func (m *Metrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalErrors++
	m.kind(kind).ErrorCount++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the total number of rejected dispatches.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// KindStats returns a copy of the metrics for one kind, or nil.
func (m *Metrics) KindStats(name string) *KindMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	km := m.kindMetrics[name]
	if km == nil {
		return nil
	}
	cp := *km
	return &cp
}

// TopKinds returns the n most dispatched kinds.
func (m *Metrics) TopKinds(n int) []*KindMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kinds := make([]*KindMetrics, 0, len(m.kindMetrics))
	for _, km := range m.kindMetrics {
		cp := *km
		kinds = append(kinds, &cp)
	}

	sort.Slice(kinds, func(i, j int) bool {
		if kinds[i].DispatchCount != kinds[j].DispatchCount {
			return kinds[i].DispatchCount > kinds[j].DispatchCount
		}
		return kinds[i].Name < kinds[j].Name
	})

	if n > len(kinds) {
		n = len(kinds)
	}
	return kinds[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.kindMetrics = make(map[string]*KindMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalDuration = 0
}
