//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsphweid/chordtrainer/cmd"
	"github.com/jsphweid/chordtrainer/engine"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/server"
	"github.com/jsphweid/chordtrainer/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// writeScaleRun records the C major run, one note every half beat.
func writeScaleRun(t *testing.T) string {
	t.Helper()
	s := smf.New()
	var tr smf.Track
	var gap uint32
	for _, name := range theory.ScaleRun("C", theory.Major) {
		pc, _ := theory.PitchClass(name)
		key := uint8(60 + pc)
		tr.Add(gap, gomidi.NoteOn(0, key, 90))
		tr.Add(240, gomidi.NoteOff(0, key))
		gap = 240
	}
	tr.Close(0)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "c-major-run.mid")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestReplayScaleRunE2E(t *testing.T) {
	assert := assert.New(t)
	settings := model.DefaultSettings()
	settings.Mode = model.Scale

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var out bytes.Buffer
	snap, err := cmd.Replay(ctx, writeScaleRun(t), settings, cmd.ReplayOptions{Speed: 1}, nil, &out)
	require.NoError(t, err)

	assert.Equal(model.ScaleStats{Runs: 1}, snap.ScaleStats)
	assert.Equal(0, snap.Scale.Cursor)
	assert.Empty(snap.Pressed)
	assert.NotContains(out.String(), "wrong")
	assert.Contains(out.String(), "D      ok     D")
}

func request(t *testing.T, srv *httptest.Server, method, path string, body interface{}) model.Snapshot {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(method, srv.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Less(t, res.StatusCode, 300, path)

	var snap model.Snapshot
	require.NoError(t, json.NewDecoder(res.Body).Decode(&snap))
	return snap
}

func TestHTTPChordE2E(t *testing.T) {
	assert := assert.New(t)
	e, err := engine.New(model.DefaultSettings())
	require.NoError(t, err)
	defer e.Close()
	srv := httptest.NewServer(server.NewRouter(e, nil, nil))
	defer srv.Close()

	request(t, srv, "PUT", "/input", model.InputRequestBody{Enabled: true, Devices: []string{"browser"}})
	snap := request(t, srv, "GET", "/state", nil)
	first := snap.CardID

	for _, name := range theory.ChordNoteSets(snap.Chord.Name, theory.Triads).Required.Sorted() {
		pc, _ := theory.PitchClass(name)
		request(t, srv, "POST", "/midi", model.MessageRequestBody{Data: []int{144, 60 + pc, 100}})
	}

	assert.Eventually(func() bool {
		return request(t, srv, "GET", "/state", nil).CardID != first
	}, 5*time.Second, 50*time.Millisecond)

	snap = request(t, srv, "GET", "/state", nil)
	assert.Equal(model.ChordStats{Streak: 1, BestStreak: 1, Correct: 1, Attempts: 1}, snap.Stats)
	assert.Empty(snap.Pressed)

	mode := "progression"
	snap = request(t, srv, "PUT", "/settings", model.SettingsRequestBody{Mode: &mode})
	require.NotNil(t, snap.Progression)
	assert.True(strings.Contains(snap.Progression.Name, "-"))
}
