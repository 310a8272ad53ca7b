package game

import (
	"time"

	"git.lost.host/meutraa/rain/internal/rng"
)

// Reduce applies one action to a state and returns the successor. Every
// transition is total: a press that matches nothing still produces a
// well-formed state. Once GameEnd is set the state is terminal and all
// further actions are ignored.
func Reduce(s State, action Action) State {
	if s.GameEnd {
		return s
	}
	switch a := action.(type) {
	case Press:
		return press(s, a.Column)
	case Release:
		return release(s, a.Column)
	case Tick:
		return tick(s)
	case SpawnNotes:
		return spawn(s, a.Notes)
	case EndOfChart:
		s.AllNotesProcessed = true
		return step(s)
	case Randomize:
		return randomize(s)
	}
	return s
}

func press(s State, column int) State {
	s.Hash = rng.Hash(s.Hash)
	// The removed-notes report always reflects the previous live set,
	// and notes only sound here on the wrong-press path
	s.RIPNotes = s.CurrentNotes
	s.PlayableNotes = nil

	sustaining := false
	for i := range s.CurrentNotes {
		n := &s.CurrentNotes[i]
		if n.Column != column {
			continue
		}
		if n.Sustaining() {
			sustaining = true
		}
		if !n.Visual {
			continue
		}
		if n.Position < Boundary-HitWindow || n.Position >= Boundary {
			continue
		}

		// A hit. Copy the note list so the prior state stays intact.
		current := make([]Note, len(s.CurrentNotes))
		for j := range s.CurrentNotes {
			current[j] = s.CurrentNotes[j].Clone()
		}
		current[i].Visual = false
		s.CurrentNotes = current
		if n.Special {
			s.BonusActive += BonusGain
			s.NoteCount += SpecialCombo
		} else {
			s.ScoreGained += s.Multiplier()
			s.NoteCount++
		}
		return s
	}

	if sustaining {
		// Holding a sustain in this column; no penalty, no phantom note
		return s
	}

	// Wrong press: synthesize a random note for immediate audio
	// feedback and reset the combo to the bonus pool.
	phantom, seed := wrongNote(s.Hash, s.nextID, column)
	s.Hash = seed
	s.nextID++
	s.PlayableNotes = []Note{phantom}
	s.NoteCount = s.BonusActive
	return s
}

var wrongInstruments = [...]string{"piano", "marimba", "pluck", "organ"}

func wrongNote(seed uint64, id int64, column int) (Note, uint64) {
	seed = rng.Hash(seed)
	instrument := wrongInstruments[rng.Intn(seed, len(wrongInstruments))]
	seed = rng.Hash(seed)
	pitch := 36 + rng.Intn(seed, 48)
	seed = rng.Hash(seed)
	velocity := 32 + rng.Intn(seed, 64)
	seed = rng.Hash(seed)
	duration := time.Duration(rng.Scale(seed) * float64(SustainMin))
	return Note{
		ID:         id,
		Column:     column,
		Position:   Boundary,
		Instrument: instrument,
		Velocity:   velocity,
		Pitch:      pitch,
		End:        duration,
	}, seed
}

func release(s State, column int) State {
	s.RIPNotes = s.CurrentNotes
	s.PlayableNotes = nil
	current := make([]Note, len(s.CurrentNotes))
	released := 0
	for i := range s.CurrentNotes {
		current[i] = s.CurrentNotes[i].Clone()
		n := &current[i]
		if n.Column == column && n.Sustaining() {
			n.Tail.Dead = true
			released++
		}
	}
	if released == 0 {
		return s
	}
	s.CurrentNotes = current
	s.ScoreGained -= float64(released) * s.Multiplier()
	s.NoteCount = s.BonusActive
	return s
}

func tick(s State) State {
	s = step(s)
	if s.TickInterval >= DecayTicks && s.BonusActive > 0 {
		s.BonusActive -= BonusDecay
		s.NoteCount -= BonusDecay
		s.TickInterval = 0
	} else {
		s.TickInterval++
	}
	return s
}

func spawn(s State, batch []Note) State {
	current := make([]Note, 0, len(s.CurrentNotes)+len(batch))
	for _, n := range s.CurrentNotes {
		current = append(current, n.Clone())
	}
	for _, n := range batch {
		n = n.Clone()
		n.Position = 0
		if duration := n.End - n.Start; duration > SustainMin {
			n.Tail = &Tail{TailStart: -int(duration / TickPeriod)}
		} else {
			s.Hash = rng.Hash(s.Hash)
			n.Special = rng.Scale(s.Hash) < SpecialChance
		}
		current = append(current, n)
	}
	s.CurrentNotes = current
	// Classify the batch in the same instant it appears
	return step(s)
}

func randomize(s State) State {
	s.RIPNotes = s.CurrentNotes
	s.PlayableNotes = nil
	current := make([]Note, len(s.CurrentNotes))
	for i := range s.CurrentNotes {
		current[i] = s.CurrentNotes[i].Clone()
		n := &current[i]
		if n.Visual {
			n.Column = rng.Intn(rng.Hash(s.Hash+uint64(i)), NColumns)
		}
	}
	s.CurrentNotes = current
	s.Hash = rng.Hash(s.Hash)
	return s
}
