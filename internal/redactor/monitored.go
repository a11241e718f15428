package redactor

import "sync"

// Stats is the running tally kept by a MonitoredRedactor across calls.
type Stats struct {
	TotalChecked int
	TotalRedacted int
	ByKind        map[string]int
	ByMethod      map[Method]int
}

// MonitoredRedactor wraps Redactor and accumulates cross-call statistics
// (spec §4.4: "A monitored variant accumulates
// {total_checked, total_redacted, by_kind, by_method}").
type MonitoredRedactor struct {
	inner *Redactor
	mu    sync.Mutex
	stats Stats
}

// NewMonitored constructs a MonitoredRedactor.
func NewMonitored(cfg Config) *MonitoredRedactor {
	return &MonitoredRedactor{
		inner: New(cfg),
		stats: Stats{ByKind: map[string]int{}, ByMethod: map[Method]int{}},
	}
}

// Redact runs the pipeline and folds its result into the running stats.
func (m *MonitoredRedactor) Redact(text string) Result {
	res := m.inner.Redact(text)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.TotalChecked++
	if res.Modified {
		m.stats.TotalRedacted++
	}
	for kind, n := range res.CountsByKind {
		m.stats.ByKind[kind] += n
	}
	for _, ev := range res.Events {
		m.stats.ByMethod[ev.Method]++
	}
	return res
}

// Stats returns a snapshot of the accumulated statistics.
func (m *MonitoredRedactor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := Stats{
		TotalChecked:  m.stats.TotalChecked,
		TotalRedacted: m.stats.TotalRedacted,
		ByKind:        make(map[string]int, len(m.stats.ByKind)),
		ByMethod:      make(map[Method]int, len(m.stats.ByMethod)),
	}
	for k, v := range m.stats.ByKind {
		snapshot.ByKind[k] = v
	}
	for k, v := range m.stats.ByMethod {
		snapshot.ByMethod[k] = v
	}
	return snapshot
}
