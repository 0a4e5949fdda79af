package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// OrDefault returns d when v is the zero value, otherwise v clamped to [lo, hi].
// Configuration uses it so omitted fields fall back to defaults.
func OrDefault[T constraints.Integer | constraints.Float](v, d, lo, hi T) T {
	var zero T
	if v == zero {
		return d
	}
	return Clamp(v, lo, hi)
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
