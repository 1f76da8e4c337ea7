// Package streak finds contiguous runs of matching elements within an
// ordered sequence.
package streak

import (
	"errors"
	"fmt"
)

// ErrNotInSequence is returned when a subset element is missing from the
// full sequence
var ErrNotInSequence = errors.New("element not in sequence")

// Max returns the longest run of consecutive elements of full that are all in
// subset. subset must be ordered like full. On equal length the earliest run
// wins.
func Max[T comparable](full, subset []T) ([]T, error) {
	index := make(map[T]int, len(full))
	for i, v := range full {
		index[v] = i
	}

	bestStart, bestLen := 0, 0
	runStart, runLen := 0, 0
	prev := -2
	for _, v := range subset {
		i, ok := index[v]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrNotInSequence, v)
		}
		if i == prev+1 {
			runLen++
		} else {
			runStart, runLen = i, 1
		}
		if runLen > bestLen {
			bestStart, bestLen = runStart, runLen
		}
		prev = i
	}

	run := make([]T, bestLen)
	copy(run, full[bestStart:bestStart+bestLen])
	return run, nil
}

// Current returns the length of the run that is still going at the end of
// full, matching the tail of full against the tail of subset.
func Current[T comparable](full, subset []T) int {
	n := 0
	for n < len(full) && n < len(subset) {
		if full[len(full)-1-n] != subset[len(subset)-1-n] {
			break
		}
		n++
	}
	return n
}
