package internal

import (
	"iter"
)

// IterSeqIndex pairs each value of seq with an index counting up from start.
func IterSeqIndex[T any](seq iter.Seq[T], start int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		index := start
		for val := range seq {
			if !yield(index, val) {
				return // Stop if the consumer stops
			}
			index++
		}
	}
}
