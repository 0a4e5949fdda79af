package timex

import (
	"time"

	"repeat-go/errcode"
)

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Ms converts a millisecond count from configuration into a Duration.
func Ms(ms uint32) time.Duration { return time.Duration(ms) * time.Millisecond }

// Delayer blocks the calling goroutine for at least d.
type Delayer interface {
	Delay(d time.Duration)
}

// DelayFunc adapts a plain function to Delayer.
type DelayFunc func(d time.Duration)

func (f DelayFunc) Delay(d time.Duration) { f(d) }

// Strategy names accepted in configuration.
const (
	StrategySleep = "sleep"
	StrategySpin  = "spin"
)

// Sleep yields to the scheduler for the whole wait. Cheap, timing is loose.
type Sleep struct{}

func (Sleep) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}

// Spin busy-waits. Burns CPU but wakes close to the deadline.
type Spin struct{}

func (Spin) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	spin(d)
}

// ForStrategy returns the Delayer for a configured strategy name.
// The empty string selects sleep.
func ForStrategy(name string) (Delayer, error) {
	switch name {
	case "", StrategySleep:
		return Sleep{}, nil
	case StrategySpin:
		return Spin{}, nil
	default:
		return nil, errcode.New(errcode.InvalidParams, "timex", "unknown delay strategy "+name)
	}
}

// Virtual is a Delayer that advances a counter instead of blocking.
// Test harnesses read Now to script inputs against simulated time.
type Virtual struct {
	now   time.Duration
	calls int
}

func (v *Virtual) Delay(d time.Duration) {
	v.calls++
	if d > 0 {
		v.now += d
	}
}

// Now is the simulated time elapsed since the Virtual was created.
func (v *Virtual) Now() time.Duration { return v.now }

// Calls counts Delay invocations.
func (v *Virtual) Calls() int { return v.calls }
