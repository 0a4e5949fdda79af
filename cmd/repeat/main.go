package main

import (
	"context"
	"runtime"
	"time"

	"repeat-go/bus"
	"repeat-go/services/config"
	"repeat-go/services/console"
	"repeat-go/services/game"
	"repeat-go/services/hal"
	"repeat-go/types"
)

const device = "pico"

func main() {
	time.Sleep(2 * time.Second)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, device)

	println("[main] bootstrapping bus …")
	b := bus.NewBus(8)

	println("[main] starting console …")
	con := console.NewService(hal.Console)
	_ = con.Start(ctx, b.NewConnection("console"))

	println("[main] starting game …")
	g := game.NewService(game.WithServiceLogger(con.Logger().With().Str("svc", "game").Logger()))
	g.Start(ctx, b.NewConnection("game"))

	println("[main] publishing config for", device, "…")
	errs := make(chan error, 1)
	config.NewConfigService().Start(ctx, b.NewConnection("config"), errs)
	if err := <-errs; err != nil {
		println("[main] config error:", err.Error())
	}

	mon := b.NewConnection("monitor").Subscribe(game.TopicState)
	for {
		select {
		case m := <-mon.Channel():
			if st, ok := m.Payload.(types.GameState); ok {
				println("[main] state", st.State, "round", st.Round)
			}
		case <-time.After(30 * time.Second):
			printMem()
		}
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
