package game

import (
	"time"
)

// Tail is the held extent of a sustain note. TailEnd is the leading edge
// nearest the head, TailStart the trailing edge above it. Both advance
// with the head while it is unplayed; TailEnd pins at the boundary once
// the head has passed.
type Tail struct {
	TailStart int
	TailEnd   int
	Dead      bool // released early or fully expired, false -> true only
}

type Note struct {
	ID       int64
	Column   int  // 0..3
	Visual   bool // an oncoming, unplayed note; true -> false only
	Special  bool // bonus note, rolled at spawn
	Position int  // vertical offset, advances every tick

	// Playback parameters, opaque to the engine
	Instrument string
	Velocity   int
	Pitch      int // MIDI

	Start time.Duration // chart timestamps, used only to size tails
	End   time.Duration

	Tail *Tail
}

// Clone returns a copy with its own tail, so state transitions never
// alias note data between successive states.
func (n Note) Clone() Note {
	if nil != n.Tail {
		t := *n.Tail
		n.Tail = &t
	}
	return n
}

// Sustaining reports whether this note is a held, still-sounding tail.
func (n *Note) Sustaining() bool {
	return !n.Visual && nil != n.Tail && !n.Tail.Dead
}

// Input is a single recorded key event, kept for replay persistence.
type Input struct {
	Column  int
	Press   bool
	HitTime time.Duration
}
