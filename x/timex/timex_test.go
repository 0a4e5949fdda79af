package timex

import (
	"errors"
	"testing"
	"time"

	"repeat-go/errcode"
)

func TestForStrategy(t *testing.T) {
	for _, name := range []string{"", StrategySleep} {
		d, err := ForStrategy(name)
		if err != nil {
			t.Fatalf("ForStrategy(%q): %v", name, err)
		}
		if _, ok := d.(Sleep); !ok {
			t.Fatalf("ForStrategy(%q) = %T, want Sleep", name, d)
		}
	}
	d, err := ForStrategy(StrategySpin)
	if err != nil {
		t.Fatalf("ForStrategy(spin): %v", err)
	}
	if _, ok := d.(Spin); !ok {
		t.Fatalf("ForStrategy(spin) = %T, want Spin", d)
	}
	if _, err := ForStrategy("nap"); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("expected invalid_params, got %v", err)
	}
}

func TestStrategiesBlockAtLeastDuration(t *testing.T) {
	for _, d := range []Delayer{Sleep{}, Spin{}} {
		start := time.Now()
		d.Delay(3 * time.Millisecond)
		if el := time.Since(start); el < 3*time.Millisecond {
			t.Fatalf("%T returned after %v", d, el)
		}
	}
}

func TestVirtualAdvancesWithoutBlocking(t *testing.T) {
	var v Virtual
	start := time.Now()
	v.Delay(time.Hour)
	v.Delay(-time.Second)
	v.Delay(250 * time.Millisecond)
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("virtual delay blocked")
	}
	if v.Now() != time.Hour+250*time.Millisecond {
		t.Fatalf("Now = %v", v.Now())
	}
	if v.Calls() != 3 {
		t.Fatalf("Calls = %d", v.Calls())
	}
}

func TestMs(t *testing.T) {
	if Ms(400) != 400*time.Millisecond {
		t.Fatalf("Ms(400) = %v", Ms(400))
	}
}
