package metrics

import (
	"gridmcts/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration       time.Duration
	Rounds         int
	Expansions     int
	TerminalVisits int // rounds that re-evaluated an already terminal leaf
	RootPlayouts   int
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	AddRound()
	AddExpansion()
	AddTerminalVisit()
	Complete(rootPlayouts int) SearchMetric
}

type collector struct {
	startTime      time.Time
	rounds         atomic.Int32
	expansions     atomic.Int32
	terminalVisits atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.rounds.Store(0)
	m.expansions.Store(0)
	m.terminalVisits.Store(0)
}

func (m *collector) AddRound() {
	m.rounds.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddTerminalVisit() {
	m.terminalVisits.Add(1)
}

func (m *collector) Complete(rootPlayouts int) SearchMetric {
	return SearchMetric{
		Duration:       time.Since(m.startTime),
		Rounds:         int(m.rounds.Load()),
		Expansions:     int(m.expansions.Load()),
		TerminalVisits: int(m.terminalVisits.Load()),
		RootPlayouts:   rootPlayouts,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                                 {}
func (m *dummyCollector) AddRound()                              {}
func (m *dummyCollector) AddExpansion()                          {}
func (m *dummyCollector) AddTerminalVisit()                      {}
func (m *dummyCollector) Complete(rootPlayouts int) SearchMetric { return SearchMetric{} }
