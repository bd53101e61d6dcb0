package vsa

import "sync/atomic"

// Stats is a snapshot of the domain metrics.
type Stats struct {
	// Lifts counts element-wise operations over discrete sets.
	Lifts uint64
	// Collapses counts sets folded into one interval for being oversized.
	Collapses uint64
	// Demotions counts sets replaced by their only member.
	Demotions uint64
	// LargestFanOut is the most intervals produced by a single lift,
	// before de-duplication and normalization.
	LargestFanOut uint64
}

// domainMetrics is only updated with -vsa-metrics.
type domainMetrics struct {
	lifts, collapses, demotions, largestFanOut counter64
}

type counter64 struct {
	v atomic.Uint64
}

func (c *counter64) Add(n uint64) {
	if opts.Metrics() {
		c.v.Add(n)
	}
}

// Max raises the counter to n if it is lower.
func (c *counter64) Max(n uint64) {
	if !opts.Metrics() {
		return
	}
	for {
		cur := c.v.Load()
		if n <= cur || c.v.CompareAndSwap(cur, n) {
			return
		}
	}
}

var metrics domainMetrics

func (m *domainMetrics) recordLift(produced int) {
	m.lifts.Add(1)
	m.largestFanOut.Max(uint64(produced))
}

// Metrics returns the metrics collected so far.
func Metrics() Stats {
	return Stats{
		Lifts:         metrics.lifts.v.Load(),
		Collapses:     metrics.collapses.v.Load(),
		Demotions:     metrics.demotions.v.Load(),
		LargestFanOut: metrics.largestFanOut.v.Load(),
	}
}

// ResetMetrics clears the collected metrics.
func ResetMetrics() {
	metrics.lifts.v.Store(0)
	metrics.collapses.v.Store(0)
	metrics.demotions.v.Store(0)
	metrics.largestFanOut.v.Store(0)
}
