package game

// Frame is the pure projection of a state transition into render and
// audio commands. Collaborators consume it without ever touching State.
type Frame struct {
	Clear []Note // erase these, the prior live set
	Draw  []Note // then draw these

	Attacks  []Note  // start sounding
	Releases []int64 // note ids whose sustain ended this transition

	Score       float64
	Multiplier  float64
	Bonus       int
	Combo       int
	Countdown   float64 // seconds until the next bonus drain
	GameEnd     bool
}

// Project diffs two successive states into a Frame. It needs the
// predecessor only to detect tails that died during the transition.
func Project(prev, cur State) Frame {
	f := Frame{
		Clear:      cur.RIPNotes,
		Draw:       cur.CurrentNotes,
		Attacks:    cur.PlayableNotes,
		Score:      cur.ScoreGained,
		Multiplier: cur.Multiplier(),
		Bonus:      cur.BonusActive,
		Combo:      cur.NoteCount,
		Countdown:  cur.DecayCountdown().Seconds(),
		GameEnd:    cur.GameEnd,
	}

	alive := map[int64]bool{}
	for i := range prev.CurrentNotes {
		n := &prev.CurrentNotes[i]
		if nil != n.Tail && !n.Tail.Dead {
			alive[n.ID] = true
		}
	}
	for i := range cur.CurrentNotes {
		n := &cur.CurrentNotes[i]
		if alive[n.ID] && n.Tail.Dead {
			f.Releases = append(f.Releases, n.ID)
		}
		delete(alive, n.ID)
	}
	// Tails that vanished entirely this step also stop sounding
	for i := range cur.RIPNotes {
		n := &cur.RIPNotes[i]
		if alive[n.ID] {
			f.Releases = append(f.Releases, n.ID)
		}
	}
	return f
}
