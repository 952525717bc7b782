package batch_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine/batch"
)

func TestProcessor_Process(t *testing.T) {
	t.Run("Sequential", func(t *testing.T) {
		p, err := batch.NewProcessor[int](3)
		require.NoError(t, err)

		var got []int
		var offsets []int
		err = p.Process(context.Background(), []int{1, 2, 3, 4, 5, 6, 7}, func(_ context.Context, b []int, offset int) error {
			got = append(got, b...)
			offsets = append(offsets, offset)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got)
		assert.Equal(t, []int{0, 3, 6}, offsets)
	})

	t.Run("Concurrent", func(t *testing.T) {
		p, err := batch.NewProcessor[int](10)
		require.NoError(t, err)

		items := make([]int, 95)
		for i := range items {
			items[i] = i
		}
		var sum atomic.Int64
		err = p.ProcessConcurrent(context.Background(), items, func(_ context.Context, b []int, _ int) error {
			for _, v := range b {
				sum.Add(int64(v))
			}
			return nil
		}, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(95*94/2), sum.Load())
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, err := batch.NewProcessor[int](2)
		require.NoError(t, err)

		boom := errors.New("boom")
		err = p.Process(context.Background(), []int{1, 2, 3, 4}, func(_ context.Context, b []int, _ int) error {
			if b[0] == 3 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "batch 1 failed")
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p := batch.NewProcessorWithDefaults[int]()
		err := p.Process(context.Background(), nil, func(context.Context, []int, int) error { return nil })
		require.ErrorIs(t, err, batch.ErrEmptyItems)
	})

	t.Run("NilCallback", func(t *testing.T) {
		p := batch.NewProcessorWithDefaults[int]()
		err := p.Process(context.Background(), []int{1}, nil)
		require.ErrorIs(t, err, batch.ErrNilCallback)
	})

	t.Run("InvalidBatchSize", func(t *testing.T) {
		_, err := batch.NewProcessor[int](0)
		require.ErrorIs(t, err, batch.ErrInvalidBatchSize)

		_, err = batch.NewProcessor[int](batch.MaxBatchSize + 1)
		require.ErrorIs(t, err, batch.ErrInvalidBatchSize)
	})
}

func TestProcessor_ProgressCallback(t *testing.T) {
	p, err := batch.NewProcessor[int](2)
	require.NoError(t, err)

	var mu sync.Mutex
	var snaps []batch.ProgressSnapshot
	p.WithProgressCallback(func(s batch.ProgressSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		snaps = append(snaps, s)
	})

	err = p.Process(context.Background(), []int{1, 2, 3, 4, 5}, func(context.Context, []int, int) error { return nil })
	require.NoError(t, err)

	require.Len(t, snaps, 3)
	last := snaps[len(snaps)-1]
	assert.Equal(t, 5, last.ProcessedItems)
	assert.Equal(t, 3, last.ProcessedBatches)
	assert.InDelta(t, 100.0, last.PercentComplete, 1e-9)
	assert.True(t, last.IsComplete())
}

func TestProgress(t *testing.T) {
	p := batch.NewProgress(10, 5, 2)
	s := p.Snapshot()
	assert.Equal(t, 0, s.ProcessedItems)
	assert.InDelta(t, 0.0, s.PercentComplete, 1e-9)
	assert.False(t, s.IsComplete())

	p.AddProcessed(4)
	s = p.Snapshot()
	assert.Equal(t, 4, s.ProcessedItems)
	assert.Equal(t, 1, s.ProcessedBatches)
	assert.InDelta(t, 40.0, s.PercentComplete, 1e-9)
}

func TestProcessor_CalculateBatches(t *testing.T) {
	tests := []struct {
		name      string
		batchSize int
		total     int
		want      [][2]int
	}{
		{"exact", 5, 10, [][2]int{{0, 5}, {5, 10}}},
		{"remainder", 4, 10, [][2]int{{0, 4}, {4, 8}, {8, 10}}},
		{"single", 100, 3, [][2]int{{0, 3}}},
		{"zero", 10, 0, [][2]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := batch.NewProcessor[int](tt.batchSize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.CalculateBatches(tt.total))
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Run("preserves order and per-item errors", func(t *testing.T) {
		items := make([]int, 250)
		for i := range items {
			items[i] = i
		}
		errOdd := errors.New("odd")

		results, err := batch.Evaluate(context.Background(), items, func(_ context.Context, v int) (int, error) {
			if v%2 == 1 {
				return 0, errOdd
			}
			return v * 10, nil
		}, batch.Options{Concurrency: 8, BatchSize: 7})
		require.NoError(t, err)
		require.Len(t, results, len(items))

		for i, r := range results {
			assert.Equal(t, i, r.Index)
			if i%2 == 1 {
				require.ErrorIs(t, r.Err, errOdd)
			} else {
				require.NoError(t, r.Err)
				assert.Equal(t, i*10, r.Value)
			}
		}
	})

	t.Run("sequential run uses the default batch size", func(t *testing.T) {
		items := make([]int, 250)
		for i := range items {
			items[i] = i
		}
		var snapshots []batch.ProgressSnapshot

		results, err := batch.Evaluate(context.Background(), items, func(_ context.Context, v int) (int, error) {
			return v + 1, nil
		}, batch.Options{Concurrency: 1, OnProgress: func(s batch.ProgressSnapshot) {
			snapshots = append(snapshots, s)
		}})
		require.NoError(t, err)
		require.Len(t, results, len(items))
		assert.Equal(t, 250, results[249].Value)
		assert.Len(t, snapshots, 3, "250 items in batches of %d", batch.DefaultBatchSize)
	})

	t.Run("empty input", func(t *testing.T) {
		results, err := batch.Evaluate(context.Background(), []string{}, func(_ context.Context, s string) (string, error) {
			return s, nil
		}, batch.Options{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("nil function", func(t *testing.T) {
		_, err := batch.Evaluate[int, int](context.Background(), []int{1}, nil, batch.Options{})
		require.ErrorIs(t, err, batch.ErrNilCallback)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := batch.Evaluate(context.Background(), []int{1}, func(_ context.Context, v int) (int, error) {
			return v, nil
		}, batch.Options{BatchSize: -1})
		require.ErrorIs(t, err, batch.ErrInvalidBatchSize)

		_, err = batch.Evaluate(context.Background(), []int{1}, func(_ context.Context, v int) (int, error) {
			return v, nil
		}, batch.Options{BatchSize: batch.MaxBatchSize + 1})
		require.ErrorIs(t, err, batch.ErrInvalidBatchSize)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := batch.Evaluate(ctx, []int{1, 2, 3}, func(_ context.Context, v int) (int, error) {
			return v, nil
		}, batch.Options{Concurrency: 1, BatchSize: 1})
		require.ErrorIs(t, err, context.Canceled)
		require.Len(t, results, 3)
		for _, r := range results {
			require.ErrorIs(t, r.Err, context.Canceled)
		}
	})
}
