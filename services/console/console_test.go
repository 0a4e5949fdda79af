package console

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"repeat-go/bus"
	"repeat-go/types"
)

// lineSink forwards each write as one line.
type lineSink chan string

func (c lineSink) Write(p []byte) (int, error) {
	c <- strings.TrimSpace(string(p))
	return len(p), nil
}

func expect(t *testing.T, lines lineSink, substr ...string) map[string]any {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case l := <-lines:
			ok := true
			for _, s := range substr {
				if !strings.Contains(l, s) {
					ok = false
				}
			}
			if !ok {
				continue
			}
			var m map[string]any
			if err := json.Unmarshal([]byte(l), &m); err != nil {
				t.Fatalf("not JSON: %q", l)
			}
			return m
		case <-deadline:
			t.Fatalf("no line containing %v", substr)
			return nil
		}
	}
}

func TestConsole_LogsGameEvents(t *testing.T) {
	lines := make(lineSink, 32)
	var bauds []uint32
	svc := NewService(func(baud uint32) io.Writer {
		bauds = append(bauds, baud)
		return lines
	})

	b := bus.NewBus(16)
	pub := b.NewConnection("test")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx, b.NewConnection("console"))

	// Retained state is replayed to the console on subscribe.
	pub.Publish(pub.NewMessage(bus.T("game", "state"), types.GameState{State: "idle"}, true))
	m := expect(t, lines, `"state":"idle"`)
	if m["message"] != "state" {
		t.Fatalf("line %v", m)
	}

	pub.Publish(pub.NewMessage(bus.T("game", "outcome"), types.OutcomeEvent{Kind: "success", Round: 3}, false))
	expect(t, lines, "round cleared", `"round":3`)

	pub.Publish(pub.NewMessage(bus.T("game", "outcome"),
		types.OutcomeEvent{Kind: "mismatch", Round: 4, Index: 2, Expected: "red", Actual: "blue"}, false))
	m = expect(t, lines, "game lost")
	if m["level"] != "warn" || m["actual"] != "blue" || m["expected"] != "red" {
		t.Fatalf("line %v", m)
	}

	// Heartbeat at one second carries the best round.
	pub.Publish(pub.NewMessage(bus.T("config", "console"), json.RawMessage(`{"interval_s":1,"baud":9600}`), true))
	expect(t, lines, "heartbeat interval set")
	m = expect(t, lines, "heartbeat", `"best":3`)
	if m["state"] != "idle" {
		t.Fatalf("heartbeat %v", m)
	}
	cancel()
	expect(t, lines, "console stopping")
	if len(bauds) != 2 || bauds[0] != 0 || bauds[1] != 9600 {
		t.Fatalf("opened with %v", bauds)
	}
}
