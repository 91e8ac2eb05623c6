package cmp

type BiPredicator[V any, U any] func(a V, b U) bool

func SliceEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth, va := range a {
		if va != b[nth] {
			return false
		}
	}
	return true
}

func SliceEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}

	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}

	return true
}

// check a and b have same contents, ignoring ordering.
func SliceContentEq[T comparable](a, b []T) bool {
	return SliceContentEqWith(a, b, func(x T, y T) bool { return x == y })
}

// check a and b have same contents in context of equiv, ignoring ordering.
func SliceContentEqWith[S, T any](a []S, b []T, equiv BiPredicator[S, T]) bool {
	if len(a) != len(b) {
		return false
	}

	rest := append([]T(nil), b...)

A:
	for _, x := range a {
		for i, y := range rest {
			if equiv(x, y) {
				rest = append(rest[:i], rest[i+1:]...)
				continue A
			}
		}
		return false
	}

	return len(rest) == 0
}
