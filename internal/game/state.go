package game

import (
	"time"
)

const (
	NColumns = 4

	// TickPeriod is the fixed simulation step.
	TickPeriod = 7 * time.Millisecond

	// Boundary is the hit row: the position at which notes are judged
	// or expire. HitWindow is how far above it a press still counts.
	Boundary  = 120
	HitWindow = 14

	// SustainMin is the duration above which a chart event grows a tail.
	SustainMin = 250 * time.Millisecond

	SpecialChance = 0.1
	SpecialCombo  = 100
	BonusGain     = 50
	BonusDecay    = 50

	// DecayTicks is 2000ms worth of ticks between bonus drains.
	DecayTicks = int(2 * time.Second / TickPeriod)
)

// State is the entire simulation snapshot. Transitions never mutate a
// State in place; the reducer builds the successor from copies.
type State struct {
	GameEnd           bool
	AllNotesProcessed bool

	BonusActive  int    // remaining bonus-multiplier budget
	TickInterval int    // cycle counter for bonus decay cadence
	Hash         uint64 // current seed
	NoteCount    int    // combo counter driving the multiplier
	ScoreGained  float64

	nextID int64 // source for synthetic wrong-press note ids

	CurrentNotes  []Note // all live notes
	RIPNotes      []Note // the prior live set, drives external cleanup
	PlayableNotes []Note // crossed into the hit row this step, for audio
}

// NewState returns the initial Running state. nextID continues after the
// highest parse-time id so synthetic notes never collide with chart notes.
func NewState(seed uint64, chart *Chart) State {
	var max int64
	for i := range chart.Notes {
		if chart.Notes[i].ID > max {
			max = chart.Notes[i].ID
		}
	}
	return State{
		Hash:   seed,
		nextID: max + 1,
	}
}

// Multiplier is the current score factor derived from the combo counter.
func (s *State) Multiplier() float64 {
	return 1 + 0.2*float64(s.NoteCount/10)
}

// DecayCountdown is the time until the next bonus drain, for the UI.
func (s *State) DecayCountdown() time.Duration {
	return time.Duration(DecayTicks-s.TickInterval) * TickPeriod
}
