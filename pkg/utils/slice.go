package utils

import (
	"sort"
)

// map each element in sli.
//
// args:
//     - sli : slice of `T`s
//     - mapper : mapping function from T to R
// return:
//     slice of `R`s.
//     each element indexed `N` is given with `mapper(sli[N])` .
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// flatten map to slice of its keys.
func KeysOf[T any, K comparable](m map[K]T) []K {
	sli := make([]K, 0, len(m))
	for k := range m {
		sli = append(sli, k)
	}
	return sli
}

// filter elements match with predicator
//
// args:
//
// - vs: slice
//
// - predicator: function returns true for each element to be remain in result
//
// returns:
//
// - []T: elements in vs which predicator evaluates as true.
func Filter[T any](vs []T, predicator func(T) bool) []T {
	ret := []T{}
	if len(vs) == 0 {
		return ret
	}

	for _, v := range vs {
		if predicator(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// find first element match with predicator.
//
// args:
//     - sli: slice to be scannd
//     - predicator: function return true iff given value is your searching one.
// retruns:
//     (T, true) if found. otherwise, (zero value of T, false)
func First[T any](sli []T, predicator func(T) bool) (T, bool) {
	for _, v := range sli {
		if predicator(v) {
			return v, true
		}
	}

	var zero T
	return zero, false
}

// sort slice. this does non-stable sort.
//
// args:
//     - []T : slice to be sorted
//     - less :  ordering function. see: `sort.Interface.Less`
func Sorted[T any](sli []T, less func(a, b T) bool) []T {
	sorted := make([]T, len(sli))
	copy(sorted, sli)

	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// deduplicate elements in sli, keeping first occurence order.
func Unique[T comparable](sli []T) []T {
	seen := map[T]struct{}{}
	ret := make([]T, 0, len(sli))
	for _, v := range sli {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ret = append(ret, v)
	}
	return ret
}
