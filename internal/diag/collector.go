package diag

import (
	"slices"
	"sort"
	"sync"
)

// Collector is a Consumer that keeps every received problem in memory.
type Collector struct {
	mu      sync.Mutex
	batches [][]Problem
	flushes int
}

func (c *Collector) Receive(problems []Problem) {
	c.mu.Lock()
	c.batches = append(c.batches, problems)
	c.mu.Unlock()
}

func (c *Collector) Flush() error {
	c.mu.Lock()
	c.flushes++
	c.mu.Unlock()
	return nil
}

// Batches returns the received batches in delivery order.
func (c *Collector) Batches() [][]Problem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.batches)
}

// Problems returns all received problems flattened in delivery order.
func (c *Collector) Problems() []Problem {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Problem
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}

// Flushes returns how many times Flush was called.
func (c *Collector) Flushes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes
}

// Sort orders problems by source, start, end, severity (most severe first)
// and identifier, for stable output.
func Sort(problems []Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		di, dj := problems[i].Diagnostic, problems[j].Diagnostic
		if di.Source != dj.Source {
			return di.Source < dj.Source
		}
		si, sj := rangeOrZero(di), rangeOrZero(dj)
		if si.Start != sj.Start {
			return si.Start.Less(sj.Start)
		}
		if si.End != sj.End {
			return si.End.Less(sj.End)
		}
		if di.Severity != dj.Severity {
			return di.Severity.MoreSevereThan(dj.Severity)
		}
		return di.Identifier < dj.Identifier
	})
}
