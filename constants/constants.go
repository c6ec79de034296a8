package constants

import (
	"os"
	"time"
)

func GetConfigPath() string {
	path := os.Getenv("TRAINER_CONFIG")
	if path != "" {
		return path
	}
	return "./chordtrainer.yaml"
}

func GetListenAddr() string {
	addr := os.Getenv("TRAINER_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// time between the last input change and judging a chord
const ChordDetectDelay = 100 * time.Millisecond

// single notes settle faster than chords
const ScaleDetectDelay = 50 * time.Millisecond

// after a solved chord, before the next card
const ChordNextDelay = 400 * time.Millisecond

// after a judged scale note, before notes and feedback clear
const ScaleNextDelay = 50 * time.Millisecond

const FlashDuration = 220 * time.Millisecond

const DeviceRescanInterval = time.Second
