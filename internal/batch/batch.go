package batch

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/adrianmusante/pipeline-tools/internal/logging"
)

// ErrInvalidSize is returned when a batch size smaller than 1 is requested.
var ErrInvalidSize = errors.New("batch size must be at least 1")

// Seq returns a lazy sequence of consecutive batches of items, each of
// length size except possibly the last, which holds the remainder.
// Concatenating the batches in order reproduces items exactly.
//
// Batches are sub-slices of items, not copies; callers that mutate a batch
// mutate the input.
//
// Each produced batch is reported at info level through the context logger,
// with the final batch called out even when it is full-sized. An empty
// input yields no batches and logs nothing.
//
// Every call returns a fresh sequence that can be ranged over once from the
// start; stopping early stops batch production.
func Seq[T any](ctx context.Context, items []T, size int) (iter.Seq[[]T], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, size)
	}
	log := logging.FromContext(ctx)
	return func(yield func([]T) bool) {
		for start := 0; start < len(items); start += size {
			if start+size >= len(items) {
				b := items[start:]
				log.Info(fmt.Sprintf("Send final data in length: %d", len(b)))
				yield(b)
				return
			}
			b := items[start : start+size]
			log.Info(fmt.Sprintf("Send data in length: %d", len(b)))
			if !yield(b) {
				return
			}
		}
	}, nil
}

// Split is the eager form of [Seq]: it returns all batches at once and
// logs nothing. A nil slice is returned for empty input.
func Split[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, size)
	}
	var batches [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches, nil
}

// Count reports how many batches an input of length n splits into.
// It is 0 for empty input or a size smaller than 1.
func Count(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}
