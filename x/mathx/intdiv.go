package mathx

import "golang.org/x/exp/constraints"

// CeilDiv returns ceil(a/b) for non-negative integers, 0 when b is 0.
func CeilDiv[T constraints.Integer](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
