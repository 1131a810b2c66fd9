package metrics

import (
	"sync/atomic"
	"time"
)

// DecisionMetric describes one answered request: a starting pick or one phase of a round.
type DecisionMetric struct {
	Round     int
	Phase     string
	Budget    int // Armies to place, zero outside the placement phase
	Moves     int
	StartTime time.Time
	Duration  time.Duration
	Timeout   time.Duration // Allowance announced with the request
}

// Overtime reports whether the decision took longer than it was allowed.
func (m DecisionMetric) Overtime() bool {
	return m.Timeout > 0 && m.Duration > m.Timeout
}

type Collector interface {
	Start(round int, phase string, budget int, timeout time.Duration)
	AddMoves(n int)
	Complete() DecisionMetric
	Records() []DecisionMetric
}

type collector struct {
	round     int
	phase     string
	budget    int
	timeout   time.Duration
	startTime time.Time
	moves     atomic.Int32
	records   []DecisionMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(round int, phase string, budget int, timeout time.Duration) {
	m.startTime = time.Now()
	m.round = round
	m.phase = phase
	m.budget = budget
	m.timeout = timeout
	m.moves.Store(0)
}

func (m *collector) AddMoves(n int) {
	m.moves.Add(int32(n))
}

// Complete closes the decision started last and keeps it for Records.
func (m *collector) Complete() DecisionMetric {
	metric := DecisionMetric{
		Round:     m.round,
		Phase:     m.phase,
		Budget:    m.budget,
		Moves:     int(m.moves.Load()),
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Timeout:   m.timeout,
	}
	m.records = append(m.records, metric)
	return metric
}

func (m *collector) Records() []DecisionMetric {
	return m.records
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(round int, phase string, budget int, timeout time.Duration) {}
func (m *dummyCollector) AddMoves(n int)                                                   {}
func (m *dummyCollector) Complete() DecisionMetric                                         { return DecisionMetric{} }
func (m *dummyCollector) Records() []DecisionMetric                                        { return nil }
