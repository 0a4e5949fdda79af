package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"repeat-go/bus"
	"repeat-go/errcode"
	"repeat-go/services/config"
	"repeat-go/services/console"
	"repeat-go/services/game"
	"repeat-go/services/hal"
	"repeat-go/types"
)

type options struct {
	device   string
	seed     int64
	delay    string
	midiPort string
	logFile  string
	logLevel string
	hold     time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	var o options
	seed, _ := strconv.ParseInt(getEnv("REPEAT_SEED", "0"), 10, 64)
	hold, err := time.ParseDuration(getEnv("REPEAT_HOLD", "180ms"))
	if err != nil {
		hold = 180 * time.Millisecond
	}

	root := &cobra.Command{
		Use:           "repeat-sim",
		Short:         "Play the four-pad memory game in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}
	f := root.Flags()
	f.StringVar(&o.device, "device", getEnv("REPEAT_DEVICE", "rpi"), "embedded device config to load")
	f.Int64Var(&o.seed, "seed", seed, "sequence seed (0 = from clock)")
	f.StringVar(&o.delay, "delay", getEnv("REPEAT_DELAY", ""), "delay strategy override: sleep or spin")
	f.StringVar(&o.midiPort, "midi-port", getEnv("REPEAT_MIDI_PORT", ""), "MIDI output port (substring, \"auto\" = first; empty = silent)")
	f.StringVar(&o.logFile, "log-file", getEnv("REPEAT_LOG_FILE", "repeat-sim.log"), "log destination (empty = discard)")
	f.StringVar(&o.logLevel, "log-level", getEnv("REPEAT_LOG_LEVEL", "info"), "zerolog level")
	f.DurationVar(&o.hold, "hold", hold, "how long a key press holds its button down")

	root.AddCommand(&cobra.Command{
		Use:   "devices",
		Short: "List embedded device configs",
		Run: func(cmd *cobra.Command, args []string) {
			for _, d := range config.Devices() {
				cmd.Println(d)
			}
		},
	})
	return root
}

func openLog(o options) (io.Writer, func(), error) {
	if o.logFile == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// loadGameConfig publishes the device config and overlays command-line
// overrides onto config/game before the game service reads it.
func loadGameConfig(ctx context.Context, b *bus.Bus, o options) (types.GameConfig, error) {
	var doc types.GameConfig
	conn := b.NewConnection("sim-config")
	errs := make(chan error, 1)
	config.NewConfigService().Start(ctx, conn, errs)
	if err := <-errs; err != nil {
		return doc, err
	}

	sub := conn.Subscribe(bus.T("config", "game"))
	defer conn.Unsubscribe(sub)
	select {
	case m := <-sub.Channel():
		if err := config.Decode(m.Payload, &doc); err != nil {
			return doc, err
		}
	case <-time.After(time.Second):
		return doc, errcode.New(errcode.NotConfigured, "sim", "device "+o.device+" has no game config")
	}

	if o.seed != 0 {
		doc.Seed = o.seed
	}
	if o.delay != "" {
		doc.Delay = o.delay
	}
	conn.Publish(conn.NewMessage(bus.T("config", "game"), doc, true))
	return doc, nil
}

func run(parent context.Context, o options) error {
	if parent == nil {
		parent = context.Background()
	}
	lvl, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		return errcode.Wrap(errcode.InvalidParams, "sim", err)
	}
	w, closeLog, err := openLog(o)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.WithValue(parent, config.CtxDeviceKey, o.device))
	defer cancel()

	spk, closeSpk, err := openSpeaker(o.midiPort)
	if err != nil {
		return err
	}
	defer closeSpk()

	b := bus.NewBus(16)
	doc, err := loadGameConfig(ctx, b, o)
	if err != nil {
		return err
	}

	con := console.NewService(func(uint32) io.Writer { return w })
	_ = con.Start(ctx, b.NewConnection("console"))
	log := con.Logger().Level(lvl).With().Str("svc", "game").Logger()

	pins := hal.DefaultPins()
	svc := game.NewService(
		game.WithServiceLogger(log),
		game.WithPanelFactory(func(cfg types.PanelConfig) (hal.Panel, error) {
			return hal.NewPanelWith(cfg, pins, spk)
		}),
	)
	svc.Start(ctx, b.NewConnection("game"))

	m := newModel(pins, doc.Panel, o.hold, b.NewConnection("tui"))
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
