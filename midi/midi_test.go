package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/testdrv"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		want Event
		ok   bool
	}{
		{"note on", []byte{0x90, 60, 100}, Event{On: true, Pitch: 60, Velocity: 100}, true},
		{"note on zero velocity", []byte{0x90, 60, 0}, Event{On: false, Pitch: 60}, true},
		{"note off", []byte{0x80, 64, 40}, Event{On: false, Pitch: 64}, true},
		{"other channel", []byte{0x91, 60, 100}, Event{}, false},
		{"control change", []byte{0xB0, 64, 127}, Event{}, false},
		{"too short", []byte{0x90, 60}, Event{}, false},
		{"bad data byte", []byte{0x90, 200, 100}, Event{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Decode(c.raw)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestBuildersRoundTrip(t *testing.T) {
	assert := assert.New(t)

	on, ok := Decode(NoteOn(67, 90))
	assert.True(ok)
	assert.Equal(Event{On: true, Pitch: 67, Velocity: 90}, on)

	off, ok := Decode(NoteOff(67))
	assert.True(ok)
	assert.Equal(Event{On: false, Pitch: 67}, off)
}

func TestFilterExcluded(t *testing.T) {
	names := []string{"Midi Through Port-0", "Launchkey Mini MK3", "Dummy", "USB Keystation"}
	got := FilterExcluded(names, []string{"midi through", "dummy"})
	assert.Equal(t, []string{"Launchkey Mini MK3", "USB Keystation"}, got)
}

func TestPickPreferred(t *testing.T) {
	assert := assert.New(t)

	name, ok := PickPreferred([]string{"USB Keystation", "Launchkey Mini"}, []string{"launchkey"})
	assert.True(ok)
	assert.Equal("Launchkey Mini", name)

	name, ok = PickPreferred([]string{"USB Keystation"}, []string{"launchkey"})
	assert.True(ok)
	assert.Equal("USB Keystation", name)

	_, ok = PickPreferred([]string{"A", "B"}, nil)
	assert.False(ok)

	_, ok = PickPreferred(nil, []string{"launchkey"})
	assert.False(ok)
}

func writeChordFile(t *testing.T) string {
	t.Helper()
	s := smf.New()

	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(0, gomidi.NoteOn(0, 64, 100))
	tr.Add(0, gomidi.NoteOn(0, 67, 100))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Add(0, gomidi.NoteOff(0, 64))
	tr.Add(0, gomidi.NoteOff(0, 67))
	// same instant as the release above, on another channel
	tr.Add(0, gomidi.NoteOn(3, 62, 80))
	tr.Add(480, gomidi.NoteOff(3, 62))
	tr.Close(0)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "chord.mid")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

type recorder struct {
	mu       sync.Mutex
	messages [][]byte
	connects []string
	reasons  []string
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnMessage: func(raw []byte) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.messages = append(r.messages, raw)
		},
		OnConnect:    func(device string) { r.connects = append(r.connects, device) },
		OnDisconnect: func(reason string) { r.reasons = append(r.reasons, reason) },
	}
}

func (r *recorder) received() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func TestWatcher(t *testing.T) {
	drv := testdrv.New("loopback")
	t.Cleanup(func() { drv.Close() })
	ins, err := drv.Ins()
	require.NoError(t, err)
	require.Len(t, ins, 1)
	name := ins[0].String()

	t.Run("excluded port is never opened", func(t *testing.T) {
		assert := assert.New(t)
		rec := &recorder{}
		w := NewWatcher(drv, nil, nil, []string{name}, time.Hour, rec.handlers())
		w.Tick()
		w.Tick()
		assert.Empty(w.Connected())
		assert.Empty(rec.connects)
		assert.Equal([]string{"no MIDI keyboard found"}, rec.reasons)
	})

	t.Run("lone port is connected and relayed", func(t *testing.T) {
		assert := assert.New(t)
		rec := &recorder{}
		w := NewWatcher(drv, nil, []string{"keystation"}, nil, time.Hour, rec.handlers())
		w.Tick()
		defer w.Close()
		assert.Equal(name, w.Connected())
		assert.Equal([]string{name}, rec.connects)

		outs, err := drv.Outs()
		require.NoError(t, err)
		require.NotEmpty(t, outs)
		require.NoError(t, outs[0].Open())
		require.NoError(t, outs[0].Send(NoteOn(60, 100)))
		assert.Eventually(func() bool { return rec.received() == 1 }, time.Second, 5*time.Millisecond)

		w.Close()
		assert.Empty(w.Connected())
	})
}

func TestReadNoteEvents(t *testing.T) {
	assert := assert.New(t)
	s, err := ReadMidiFile(writeChordFile(t))
	require.NoError(t, err)

	events := ReadNoteEvents(s)
	require.Len(t, events, 8)

	for i := 0; i < 3; i++ {
		ev, ok := Decode(events[i].Data)
		assert.True(ok)
		assert.True(ev.On)
		assert.Equal(events[0].At, events[i].At)
	}

	// releases sort before the press that shares their offset
	for i := 3; i < 6; i++ {
		ev, ok := Decode(events[i].Data)
		assert.True(ok)
		assert.False(ev.On)
	}
	d, ok := Decode(events[6].Data)
	assert.True(ok)
	assert.Equal(Event{On: true, Pitch: 62, Velocity: 80}, d)
	assert.Equal(events[3].At, events[6].At)
	assert.Greater(int64(events[6].At), int64(events[0].At))

	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(int64(events[i-1].At), int64(events[i].At))
	}
}

func TestReadMidiFileErrors(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.mid")
	require.NoError(t, os.WriteFile(garbage, []byte("not a midi file"), 0644))
	_, err = ReadMidiFile(garbage)
	assert.Error(t, err)
}

func TestExcerpt(t *testing.T) {
	assert := assert.New(t)
	ms := time.Millisecond
	events := []TimedMessage{
		{At: 0, Data: NoteOn(60, 90)},
		{At: 100 * ms, Data: NoteOff(60)},
		{At: 100 * ms, Data: NoteOn(62, 90)},
		{At: 150 * ms, Data: NoteOn(64, 90)},
		{At: 200 * ms, Data: NoteOff(62)},
		{At: 250 * ms, Data: NoteOff(64)},
		{At: 300 * ms, Data: NoteOn(65, 90)},
		{At: 400 * ms, Data: NoteOff(65)},
	}

	got := Excerpt(events, 100*ms, 2)
	assert.Equal([]TimedMessage{
		{At: 0, Data: NoteOn(62, 90)},
		{At: 50 * ms, Data: NoteOn(64, 90)},
		{At: 100 * ms, Data: NoteOff(62)},
		{At: 150 * ms, Data: NoteOff(64)},
	}, got)

	assert.Equal(events, Excerpt(events, 0, 0))
	assert.Empty(Excerpt(events, time.Second, 0))
}
