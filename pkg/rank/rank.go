// Package rank assigns dense ranks to sequences ordered by a derived key.
//
// Items are sorted by key and numbered starting at 1. Items with equal keys
// share a rank, and the next distinct key takes the next integer, so ranks
// have no gaps (unlike competition ranking, which skips numbers after ties).
package rank

import (
	"cmp"
	"iter"
	"slices"
	"strconv"
)

// Rank is a 1-based position in a dense ranking.
type Rank int

func (r Rank) String() string {
	return strconv.Itoa(int(r))
}

// Ranked pairs an item with its rank.
type Ranked[T any] struct {
	Rank Rank
	Item T
}

// By sorts the items of seq by the key derived from each item and yields
// (rank, item) pairs in ascending key order. The lowest key gets Rank(1),
// items with equal keys share a rank, and each new key increments the rank
// by one. The sort is stable, so items with equal keys keep the order they
// had in seq. The key function is called once per item.
//
// seq must be finite: it is consumed in full before the first pair is
// yielded. Nothing is consumed until the result is ranged over, and it is
// safe to stop ranging early.
func By[T any, K cmp.Ordered](seq iter.Seq[T], key func(T) K) iter.Seq2[Rank, T] {
	return ByFunc(seq, key, cmp.Compare[K])
}

// ByFunc is By for key types without a natural ordering. Keys are ordered
// by compare, and two items share a rank exactly when compare reports their
// keys as equal.
func ByFunc[T any, K any](seq iter.Seq[T], key func(T) K, compare func(K, K) int) iter.Seq2[Rank, T] {
	return func(yield func(Rank, T) bool) {
		entries := collectByKey(seq, key, compare)

		rank := Rank(0)
		var prev K
		for i, entry := range entries {
			if i == 0 || compare(prev, entry.key) != 0 {
				rank++
				prev = entry.key
			}
			if !yield(rank, entry.item) {
				return
			}
		}
	}
}

// Slice ranks a slice by key and collects the result.
func Slice[T any, K cmp.Ordered](items []T, key func(T) K) []Ranked[T] {
	return SliceFunc(items, key, cmp.Compare[K])
}

// SliceFunc is Slice with a caller-supplied comparator.
func SliceFunc[T any, K any](items []T, key func(T) K, compare func(K, K) int) []Ranked[T] {
	result := make([]Ranked[T], 0, len(items))
	for rank, item := range ByFunc(slices.Values(items), key, compare) {
		result = append(result, Ranked[T]{Rank: rank, Item: item})
	}
	return result
}

// Identity returns its argument, for ranking values that are their own key.
func Identity[K cmp.Ordered](v K) K {
	return v
}

// Reverse returns a comparator with the order of compare inverted.
func Reverse[K any](compare func(K, K) int) func(K, K) int {
	return func(a, b K) int {
		return compare(b, a)
	}
}

type entry[T, K any] struct {
	item T
	key  K
}

// collectByKey drains seq, caching each item's key, and stable-sorts the
// entries by key.
func collectByKey[T, K any](seq iter.Seq[T], key func(T) K, compare func(K, K) int) []entry[T, K] {
	var entries []entry[T, K]
	for item := range seq {
		entries = append(entries, entry[T, K]{item: item, key: key(item)})
	}
	slices.SortStableFunc(entries, func(a, b entry[T, K]) int {
		return compare(a.key, b.key)
	})
	return entries
}
