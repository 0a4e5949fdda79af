package main

import (
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"repeat-go/errcode"
	"repeat-go/services/hal"
)

const (
	midiChannel  = 0
	midiVelocity = 100
)

// midiSpeaker plays panel notes on a MIDI output. Like the piezo it holds
// one note at a time; a new note cuts the previous one.
type midiSpeaker struct {
	mu   sync.Mutex
	send func(gomidi.Message) error
	note uint8
	on   bool
}

func (s *midiSpeaker) SetNote(n uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.on {
		_ = s.send(gomidi.NoteOff(midiChannel, s.note))
	}
	_ = s.send(gomidi.NoteOn(midiChannel, n, midiVelocity))
	s.note, s.on = n, true
}

func (s *midiSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.on {
		_ = s.send(gomidi.NoteOff(midiChannel, s.note))
		s.on = false
	}
}

// openSpeaker picks the MIDI port whose name contains port ("auto" takes the
// first). An empty port selects the silent platform speaker.
func openSpeaker(port string) (hal.Speaker, func(), error) {
	if port == "" {
		spk, err := hal.OpenSpeaker(-1)
		return spk, func() {}, err
	}
	for _, out := range gomidi.GetOutPorts() {
		if port != "auto" && !strings.Contains(strings.ToLower(out.String()), strings.ToLower(port)) {
			continue
		}
		send, err := gomidi.SendTo(out)
		if err != nil {
			return nil, nil, errcode.Wrap(errcode.Error, "midi", err)
		}
		spk := &midiSpeaker{send: send}
		return spk, func() { spk.Stop(); gomidi.CloseDriver() }, nil
	}
	return nil, nil, errcode.New(errcode.UnknownDevice, "midi", "no output port matching "+port)
}
