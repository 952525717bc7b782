package batch

import (
	"context"
	"errors"
	"runtime"
)

// Options configure Evaluate.
type Options struct {
	// Concurrency caps the number of batches evaluated at once. Zero means runtime.NumCPU().
	Concurrency int
	// BatchSize is the number of items per batch. Zero means DefaultBatchSize.
	BatchSize int
	// OnProgress is called after each batch.
	OnProgress ProgressCallback
}

// Result is the outcome for one input item.
type Result[Out any] struct {
	// Index is the item's position in the input.
	Index int
	Value Out
	Err   error
}

// Evaluate applies fn to every item and returns one Result per item, in input order.
//
// Item errors are recorded in their Result and never stop the run. The returned
// error is non-nil only for invalid options or when ctx is cancelled; items that
// were never evaluated then carry ctx.Err().
func Evaluate[In, Out any](
	ctx context.Context,
	items []In,
	fn func(context.Context, In) (Out, error),
	opts Options,
) ([]Result[Out], error) {
	if fn == nil {
		return nil, ErrNilCallback
	}
	results := make([]Result[Out], len(items))
	if len(items) == 0 {
		return results, nil
	}

	proc := NewProcessorWithDefaults[In]()
	if opts.BatchSize != 0 {
		var err error
		if proc, err = NewProcessor[In](opts.BatchSize); err != nil {
			return nil, err
		}
	}
	proc.WithProgressCallback(opts.OnProgress)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	done := make([]bool, len(items))
	run := func(bctx context.Context, batch []In, offset int) error {
		for i, item := range batch {
			if bctx.Err() != nil {
				return bctx.Err()
			}
			v, itemErr := fn(bctx, item)
			results[offset+i] = Result[Out]{Index: offset + i, Value: v, Err: itemErr}
			done[offset+i] = true
		}
		return nil
	}

	var err error
	if concurrency == 1 {
		err = proc.Process(ctx, items, run)
	} else {
		err = proc.ProcessConcurrent(ctx, items, run, concurrency)
	}

	if err != nil {
		cause := ctx.Err()
		if cause == nil {
			cause = err
		}
		for i := range results {
			if !done[i] {
				results[i] = Result[Out]{Index: i, Err: cause}
			}
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return results, cause
		}
		return results, err
	}
	return results, nil
}
