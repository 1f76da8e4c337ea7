// Package ranking assigns dense, tie-aware ranks over several ordered keys.
package ranking

import (
	"cmp"
	"slices"
)

// Direction is the sort direction of a key
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Key is one ranking criterion
type Key[T any] struct {
	compare func(a, b T) int
}

// Int ranks by an integer field
func Int[T any](value func(T) int, dir Direction) Key[T] {
	return Key[T]{compare: func(a, b T) int {
		return directed(cmp.Compare(value(a), value(b)), dir)
	}}
}

// Float ranks by a float field
func Float[T any](value func(T) float64, dir Direction) Key[T] {
	return Key[T]{compare: func(a, b T) int {
		return directed(cmp.Compare(value(a), value(b)), dir)
	}}
}

// OptionalFloat ranks by an optional float field. Absent values sort after
// present ones in either direction and are equal to each other.
func OptionalFloat[T any](value func(T) *float64, dir Direction) Key[T] {
	return Key[T]{compare: func(a, b T) int {
		va, vb := value(a), value(b)
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}
		return directed(cmp.Compare(*va, *vb), dir)
	}}
}

func directed(c int, dir Direction) int {
	if dir == Desc {
		return -c
	}
	return c
}

// Compare orders two items by the keys in sequence
func Compare[T any](a, b T, keys ...Key[T]) int {
	for _, k := range keys {
		if c := k.compare(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// Dense sorts items in place by the keys and stores a rank on every item
// through set. The first item has rank 1; an item equal to its predecessor on
// all keys shares its rank, any other item gets the predecessor's rank plus
// one. Items equal on all keys keep their input order.
func Dense[T any](items []T, set func(item *T, rank int), keys ...Key[T]) {
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(a, b, keys...)
	})

	rank := 0
	for i := range items {
		if i == 0 || Compare(items[i-1], items[i], keys...) != 0 {
			rank++
		}
		set(&items[i], rank)
	}
}
