package io

import (
	"log"

	"github.com/ezrec/gmc4/cpu"
)

// Sounder receives buzzer requests from the emulator. Implementations
// decide what a sound code means: log it, record it, or drive a real
// audio device.
type Sounder interface {
	// Play reports a sound request. For cpu.SOUND_NOTE, note selects
	// the pitch (the value of A, 1-E); it is zero otherwise.
	Play(sound cpu.Sound, note uint8)
}

// Silent is a Sounder that discards every request.
type Silent struct{}

func (Silent) Play(sound cpu.Sound, note uint8) {}

// Recorder is a Sounder that appends every request, for tests and
// tracing.
type Recorder struct {
	Played []Request
}

// Request is one recorded sound request.
type Request struct {
	Sound cpu.Sound
	Note  uint8
}

func (rec *Recorder) Play(sound cpu.Sound, note uint8) {
	rec.Played = append(rec.Played, Request{Sound: sound, Note: note})
}

// Reset discards the recorded requests.
func (rec *Recorder) Reset() {
	rec.Played = nil
}

// Console is a Sounder that logs requests with their nominal durations.
type Console struct{}

func (Console) Play(sound cpu.Sound, note uint8) {
	switch sound {
	case cpu.SOUND_NOTE:
		log.Printf("buzzer: note %X (%v)", note, sound.Duration())
	default:
		log.Printf("buzzer: %v (%v)", sound, sound.Duration())
	}
}

// interface checks
var _ Sounder = Silent{}
var _ Sounder = (*Recorder)(nil)
var _ Sounder = Console{}
