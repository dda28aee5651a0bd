package qdistance

import (
	"sort"
	"sync"
	"time"
)

type Metrics struct {
	mu               sync.RWMutex
	CircuitsCompiled int64
	CompileFailures  int64
	RunCount         int64
	RunFailures      int64
	ShotsExecuted    int64
	TotalRunTime     time.Duration

	AverageRunLatency time.Duration
	P95RunLatency     time.Duration
	P99RunLatency     time.Duration
	RunSuccessRate    float64

	// Postselection outcomes
	Classifications    int64
	LastAcceptanceRate float64
	BreakerRejections  int64

	latencies  []time.Duration
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]time.Duration, 0, 1000), // Store last 1000 measurements
		windowSize: 1000,
	}
}

func (m *Metrics) recordCompile(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if success {
		m.CircuitsCompiled++
		return
	}
	m.CompileFailures++
}

func (m *Metrics) recordRun(startTime time.Time, shots int, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.RunCount++
	m.TotalRunTime += duration

	if success {
		m.ShotsExecuted += int64(shots)
	} else {
		m.RunFailures++
	}
	m.RunSuccessRate = float64(m.RunCount-m.RunFailures) / float64(m.RunCount)

	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) recordEstimate(e Estimate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Classifications++
	m.LastAcceptanceRate = e.AcceptanceRate
}

func (m *Metrics) recordRejection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BreakerRejections++
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageRunLatency = (m.AverageRunLatency*time.Duration(m.RunCount-1) + duration) / time.Duration(m.RunCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
	p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

	m.P95RunLatency = sorted[p95Index]
	m.P99RunLatency = sorted[p99Index]
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"circuits_compiled":    m.CircuitsCompiled,
		"compile_failures":     m.CompileFailures,
		"runs":                 m.RunCount,
		"run_failures":         m.RunFailures,
		"shots":                m.ShotsExecuted,
		"success_rate":         m.RunSuccessRate,
		"avg_latency":          m.AverageRunLatency.Milliseconds(),
		"p95_latency":          m.P95RunLatency.Milliseconds(),
		"p99_latency":          m.P99RunLatency.Milliseconds(),
		"classifications":      m.Classifications,
		"last_acceptance_rate": m.LastAcceptanceRate,
		"breaker_rejections":   m.BreakerRejections,
	}
}
