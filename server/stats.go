package server

import (
	"sync/atomic"
)

type queryKind int

const (
	queryAverages queryKind = iota
	queryTopByColor
	queryTopInTest
	queryTopOverall
)

// StatsReader interface provides the ability to access the statistics of the server
type StatsReader interface {
	// GetGlobalStats returns the server statistics.
	GetGlobalStats() GlobalStats
}

// GlobalStats is the statistics of the color service.
type GlobalStats struct {
	SetTotal          uint64
	GetTotal          uint64
	InvalidInputTotal uint64
	RandomizeTotal    uint64
	QueryStats        QueryStats
}

// QueryStats counts the aggregation queries by kind.
type QueryStats struct {
	Averages   uint64
	TopByColor uint64
	TopInTest  uint64
	TopOverall uint64
}

type statsManager struct {
	totalStats *GlobalStats
}

func newStatsManager() *statsManager {
	return &statsManager{
		totalStats: &GlobalStats{},
	}
}

func (s *statsManager) colorSet() {
	atomic.AddUint64(&s.totalStats.SetTotal, 1)
}

func (s *statsManager) colorGot() {
	atomic.AddUint64(&s.totalStats.GetTotal, 1)
}

func (s *statsManager) invalidInput() {
	atomic.AddUint64(&s.totalStats.InvalidInputTotal, 1)
}

func (s *statsManager) randomized() {
	atomic.AddUint64(&s.totalStats.RandomizeTotal, 1)
}

func (s *statsManager) queried(kind queryKind) {
	var i *uint64
	switch kind {
	case queryAverages:
		i = &s.totalStats.QueryStats.Averages
	case queryTopByColor:
		i = &s.totalStats.QueryStats.TopByColor
	case queryTopInTest:
		i = &s.totalStats.QueryStats.TopInTest
	case queryTopOverall:
		i = &s.totalStats.QueryStats.TopOverall
	default:
		return
	}
	atomic.AddUint64(i, 1)
}

// GetGlobalStats returns a copy of the statistics.
func (s *statsManager) GetGlobalStats() GlobalStats {
	st := s.totalStats
	return GlobalStats{
		SetTotal:          atomic.LoadUint64(&st.SetTotal),
		GetTotal:          atomic.LoadUint64(&st.GetTotal),
		InvalidInputTotal: atomic.LoadUint64(&st.InvalidInputTotal),
		RandomizeTotal:    atomic.LoadUint64(&st.RandomizeTotal),
		QueryStats: QueryStats{
			Averages:   atomic.LoadUint64(&st.QueryStats.Averages),
			TopByColor: atomic.LoadUint64(&st.QueryStats.TopByColor),
			TopInTest:  atomic.LoadUint64(&st.QueryStats.TopInTest),
			TopOverall: atomic.LoadUint64(&st.QueryStats.TopOverall),
		},
	}
}
