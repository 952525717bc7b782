package batch

import (
	"sync"
	"time"
)

// percentMultiplier is used to convert a ratio to percentage (0-100).
const percentMultiplier = 100

// Progress tracks a running batch job. It is safe for concurrent use.
type Progress struct {
	mu               sync.RWMutex
	totalItems       int
	processedItems   int
	totalBatches     int
	processedBatches int
	batchSize        int
	startTime        time.Time
}

// NewProgress creates a new progress tracker.
func NewProgress(totalItems, totalBatches, batchSize int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		batchSize:    batchSize,
		startTime:    time.Now(),
	}
}

// AddProcessed records one finished batch of n items.
func (p *Progress) AddProcessed(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += n
	p.processedBatches++
}

// Snapshot returns a copy of the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	elapsed := time.Since(p.startTime)
	s := ProgressSnapshot{
		TotalItems:       p.totalItems,
		ProcessedItems:   p.processedItems,
		TotalBatches:     p.totalBatches,
		ProcessedBatches: p.processedBatches,
		BatchSize:        p.batchSize,
		Elapsed:          elapsed,
	}
	if p.totalItems > 0 {
		s.PercentComplete = float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
	}
	if p.processedItems > 0 {
		perItem := elapsed / time.Duration(p.processedItems)
		s.Remaining = perItem * time.Duration(p.totalItems-p.processedItems)
	}
	return s
}

// ProgressSnapshot is an immutable view of a Progress.
type ProgressSnapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	BatchSize        int
	PercentComplete  float64
	Elapsed          time.Duration
	// Remaining is an estimate from the average time per item so far.
	Remaining time.Duration
}

// IsComplete reports whether every item has been processed.
func (s ProgressSnapshot) IsComplete() bool {
	return s.ProcessedItems >= s.TotalItems
}
