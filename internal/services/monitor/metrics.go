package monitor

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// PerformanceSample is one point-in-time reading of process health.
type PerformanceSample struct {
	Goroutines     int       `json:"goroutines"`
	HeapAllocBytes uint64    `json:"heap_alloc_bytes"`
	HeapSysBytes   uint64    `json:"heap_sys_bytes"`
	NumGC          uint32    `json:"num_gc"`
	ActiveSessions int       `json:"active_sessions"`
	SampledAt      time.Time `json:"sampled_at"`
}

type metricsState struct {
	mu      sync.RWMutex
	latest  PerformanceSample
	sampled bool
}

// SamplePerformance records a runtime health reading. Samples are kept
// in memory only; the latest one backs the status endpoint.
func (m *Monitor) SamplePerformance(_ context.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	sample := PerformanceSample{
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: ms.HeapAlloc,
		HeapSysBytes:   ms.HeapSys,
		NumGC:          ms.NumGC,
		ActiveSessions: m.identity.ActiveSessions(),
		SampledAt:      m.clock.Now(),
	}

	m.metrics.mu.Lock()
	m.metrics.latest = sample
	m.metrics.sampled = true
	m.metrics.mu.Unlock()
}

// LatestSample returns the most recent performance reading, if any.
func (m *Monitor) LatestSample() (PerformanceSample, bool) {
	m.metrics.mu.RLock()
	defer m.metrics.mu.RUnlock()
	return m.metrics.latest, m.metrics.sampled
}
