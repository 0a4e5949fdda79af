package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

// Raspberry Pi Pico: buttons GP2..GP5 to ground, LEDs on GP6..GP9,
// piezo on GP16 (PWM0 A).
const cfgPico = `{
  "game": {
    "panel": {
      "buttons": [2, 3, 4, 5],
      "leds": [6, 7, 8, 9],
      "active_low": true,
      "speaker": 16,
      "notes": [68, 63, 56, 59],
      "fault_note": 28
    },
    "on_ms": 420,
    "gap_ms": 180,
    "step_timeout_ms": 3000,
    "settle_ms": 20,
    "poll_ms": 5,
    "feedback_ms": 150,
    "delay": "spin"
  },
  "console": {
    "interval_s": 10,
    "baud": 115200
  }
}`

// Raspberry Pi header wiring (BCM numbers) of the classic build.
const cfgRPi = `{
  "game": {
    "panel": {
      "buttons": [4, 18, 23, 17],
      "leds": [27, 24, 25, 22],
      "active_low": true,
      "speaker": -1
    },
    "delay": "sleep",
    "pace": []
  },
  "console": {
    "interval_s": 30
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"rpi":  []byte(cfgRPi),
}
