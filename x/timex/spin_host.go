//go:build !rp2040 && !rp2350

package timex

import (
	"runtime"
	"time"
)

func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		// Keep other goroutines (the bus, the TUI) alive on GOMAXPROCS=1.
		runtime.Gosched()
	}
}
