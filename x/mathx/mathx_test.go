package mathx

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{11, 10, 0, 10}, // swapped bounds
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault[uint32](0, 400, 50, 5000); got != 400 {
		t.Fatalf("zero -> %d", got)
	}
	if got := OrDefault[uint32](10, 400, 50, 5000); got != 50 {
		t.Fatalf("below range -> %d", got)
	}
	if got := OrDefault[uint32](700, 400, 50, 5000); got != 700 {
		t.Fatalf("in range -> %d", got)
	}
}

func TestCeilDiv(t *testing.T) {
	if got := CeilDiv(20*time.Millisecond, 5*time.Millisecond); got != 4 {
		t.Fatalf("CeilDiv exact = %d", got)
	}
	if got := CeilDiv(21*time.Millisecond, 5*time.Millisecond); got != 5 {
		t.Fatalf("CeilDiv round-up = %d", got)
	}
	if got := CeilDiv(7, 0); got != 0 {
		t.Fatalf("CeilDiv by zero = %d", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 4) != 3 || Max(3, 4) != 4 {
		t.Fatal("Min/Max")
	}
}
