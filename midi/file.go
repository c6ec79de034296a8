package midi

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.New(fmt.Sprint(r))
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

// TimedMessage is a raw device message at an offset from the start of a file.
type TimedMessage struct {
	At   time.Duration
	Data []byte
}

// ReadNoteEvents flattens every track into one time-ordered stream of note
// messages, rewritten onto the first channel. At equal offsets note-offs come
// first so a repeated chord releases before it is struck again.
func ReadNoteEvents(s *smf.SMF) []TimedMessage {
	type reduced struct {
		offset    int64
		isNoteOff bool
		note      uint8
		velocity  uint8
	}
	var events []reduced

	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			msg := midi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				events = append(events, reduced{offset: s.TimeAt(absTicks), note: key, velocity: velocity})
			case msg.GetNoteEnd(&channel, &key):
				events = append(events, reduced{offset: s.TimeAt(absTicks), isNoteOff: true, note: key})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].offset != events[j].offset {
			return events[i].offset < events[j].offset
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	res := make([]TimedMessage, 0, len(events))
	for _, evt := range events {
		data := NoteOn(evt.note, evt.velocity)
		if evt.isNoteOff {
			data = NoteOff(evt.note)
		}
		res = append(res, TimedMessage{At: time.Duration(evt.offset) * time.Microsecond, Data: data})
	}
	return res
}

// Excerpt keeps the events from offset from on, shifted to start at zero.
// Releases of notes struck before from are dropped. With limit > 0 it stops
// after that many note-ons, still releasing every note struck inside.
func Excerpt(events []TimedMessage, from time.Duration, limit int) []TimedMessage {
	var res []TimedMessage
	held := make(map[uint8]bool)
	numNoteOn := 0
	for _, evt := range events {
		if evt.At < from {
			continue
		}
		e, ok := Decode(evt.Data)
		if !ok {
			continue
		}
		shifted := TimedMessage{At: evt.At - from, Data: evt.Data}
		if e.On {
			if limit > 0 && numNoteOn >= limit {
				continue
			}
			numNoteOn++
			held[e.Pitch] = true
			res = append(res, shifted)
		} else if held[e.Pitch] {
			delete(held, e.Pitch)
			res = append(res, shifted)
		}
		if limit > 0 && numNoteOn >= limit && len(held) == 0 {
			break
		}
	}
	return res
}
