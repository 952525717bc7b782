package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Default batch processing configuration.
const (
	// DefaultBatchSize is the default number of items per batch.
	DefaultBatchSize = 100

	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 1000
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// Callback processes one batch. offset is the index of batch[0] within the input.
type Callback[T any] func(ctx context.Context, batch []T, offset int) error

// ProgressCallback is invoked after each batch completes.
type ProgressCallback func(snapshot ProgressSnapshot)

// Processor splits items into fixed-size batches.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// NewProcessorWithDefaults creates a processor with DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{batchSize: DefaultBatchSize}
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// Process runs the batches one after another and stops on the first error.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	return p.ProcessConcurrent(ctx, items, callback, 1)
}

// ProcessConcurrent runs up to maxConcurrency batches at a time.
//
// The first callback error cancels the context passed to the remaining batches and
// is returned. Cancellation of ctx stops scheduling new batches.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback Callback[T],
	maxConcurrency int,
) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	bounds := p.CalculateBatches(len(items))
	progress := NewProgress(len(items), len(bounds), p.batchSize)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i, b := range bounds {
		if gCtx.Err() != nil {
			break
		}
		batch := items[b[0]:b[1]]
		offset := b[0]
		batchIndex := i

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := callback(gCtx, batch, offset); err != nil {
				return fmt.Errorf("batch %d failed: %w", batchIndex, err)
			}
			progress.AddProcessed(len(batch))
			if p.onProgress != nil {
				p.onProgress(progress.Snapshot())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// CalculateBatches returns the [start, end) boundaries of each batch.
func (p *Processor[T]) CalculateBatches(totalItems int) [][2]int {
	total := totalItems / p.batchSize
	if totalItems%p.batchSize > 0 {
		total++
	}

	batches := make([][2]int, total)
	for i := range total {
		start := i * p.batchSize
		end := min(start+p.batchSize, totalItems)
		batches[i] = [2]int{start, end}
	}
	return batches
}
