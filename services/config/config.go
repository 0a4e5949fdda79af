package config

import (
	"context"
	"encoding/json"
	"sort"

	"repeat-go/bus"
	"repeat-go/errcode"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Devices lists the device IDs with an embedded config.
func Devices() []string {
	out := make([]string, 0, len(embeddedConfigs))
	for k := range embeddedConfigs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig reads the device config from embedded data and publishes
// each top-level key as a retained json.RawMessage on config/<key>.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return errcode.New(errcode.InvalidParams, s.Name, "missing device ID in context")
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return errcode.New(errcode.UnknownDevice, s.Name, "no embedded config for device: "+device)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return errcode.Wrap(errcode.InvalidPayload, s.Name, err)
	}

	for k, v := range m {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	return nil
}

// Start launches the config publisher in a goroutine. Failures are
// reported on errs when it is non-nil.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection, errs chan<- error) {
	go func() {
		err := s.publishConfig(ctx, conn)
		if errs != nil {
			errs <- err
		}
	}()
}

// Decode converts a config payload into v. Payloads published by this
// service are json.RawMessage; typed values of the same type and generic
// decoded JSON (maps, slices) are accepted too.
func Decode(payload any, v any) error {
	var raw []byte
	switch p := payload.(type) {
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	case string:
		raw = []byte(p)
	case nil:
		return errcode.New(errcode.InvalidPayload, "decode", "empty payload")
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return errcode.Wrap(errcode.InvalidPayload, "decode", err)
		}
		raw = b
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errcode.Wrap(errcode.InvalidPayload, "decode", err)
	}
	return nil
}
