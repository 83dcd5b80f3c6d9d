package mw

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Диапазон гистограммы: 1 мкс .. 60 с, 3 значащих цифры.
const (
	latMin     = 1
	latMax     = int64(60 * time.Second / time.Microsecond)
	latSigFigs = 3
)

// Latency: гистограммы длительности по шаблону маршрута.
type Latency struct {
	mu     sync.Mutex
	routes map[string]*hdrhistogram.Histogram
}

func NewLatency() *Latency {
	return &Latency{routes: make(map[string]*hdrhistogram.Histogram)}
}

func (l *Latency) Record(route string, d time.Duration) {
	us := d.Microseconds()
	if us < latMin {
		us = latMin
	}
	if us > latMax {
		us = latMax
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.routes[route]
	if !ok {
		h = hdrhistogram.New(latMin, latMax, latSigFigs)
		l.routes[route] = h
	}
	_ = h.RecordValue(us)
}

type RouteLatency struct {
	Route string  `json:"route"`
	Count int64   `json:"count"`
	P50ms float64 `json:"p50_ms"`
	P95ms float64 `json:"p95_ms"`
	P99ms float64 `json:"p99_ms"`
	MaxMs float64 `json:"max_ms"`
}

// Snapshot: перцентили по маршрутам, отсортированные по имени.
func (l *Latency) Snapshot() []RouteLatency {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]RouteLatency, 0, len(l.routes))
	for route, h := range l.routes {
		out = append(out, RouteLatency{
			Route: route,
			Count: h.TotalCount(),
			P50ms: usToMs(h.ValueAtQuantile(50)),
			P95ms: usToMs(h.ValueAtQuantile(95)),
			P99ms: usToMs(h.ValueAtQuantile(99)),
			MaxMs: usToMs(h.Max()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}

func usToMs(v int64) float64 { return float64(v) / 1000 }
