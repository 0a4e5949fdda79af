//go:build rp2040 || rp2350

package timex

import (
	"time"

	"tinygo.org/x/drivers/delay"
)

// delay.Sleep hands anything over ~16 ms to time.Sleep, so long waits are
// fed to it in 1 ms slices to keep busy-waiting.
func spin(d time.Duration) {
	for d >= time.Millisecond {
		delay.Sleep(time.Millisecond)
		d -= time.Millisecond
	}
	if d > 0 {
		delay.Sleep(d)
	}
}
