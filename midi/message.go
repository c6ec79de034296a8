package midi

import (
	"gitlab.com/gomidi/midi/v2"
)

const (
	NoteOnStatus  = 0x90
	NoteOffStatus = 0x80
)

// Event is a decoded note-on or note-off.
type Event struct {
	On       bool
	Pitch    uint8
	Velocity uint8
}

// Decode reads a raw (status, pitch, velocity) device message. Only note-on
// and note-off on the first channel are understood; a note-on with velocity
// 0 is a note-off. Everything else is ignored.
func Decode(raw []byte) (Event, bool) {
	if len(raw) != 3 || raw[1] > 127 || raw[2] > 127 {
		return Event{}, false
	}

	msg := midi.Message(raw)
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if ch != 0 {
			return Event{}, false
		}
		return Event{On: true, Pitch: key, Velocity: vel}, true
	case msg.GetNoteEnd(&ch, &key):
		if ch != 0 {
			return Event{}, false
		}
		return Event{On: false, Pitch: key}, true
	}
	return Event{}, false
}

// NoteOn builds the raw message for a key press on the first channel.
func NoteOn(pitch, velocity uint8) []byte {
	return midi.NoteOn(0, pitch, velocity).Bytes()
}

// NoteOff builds the raw message for a key release on the first channel.
func NoteOff(pitch uint8) []byte {
	return midi.NoteOff(0, pitch).Bytes()
}
