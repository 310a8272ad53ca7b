package game

// step advances every live note by one position unit and reclassifies it.
//
// The full decision table over (visual, tail, position vs boundary):
//
//	visual, no tail, pos <  B  -> keep
//	hit,    no tail, pos >= B  -> playable, drop
//	visual, no tail, pos >= B  -> miss, drop
//	visual, tail,    pos <  B  -> keep
//	visual, tail,    pos >= B  -> miss; becomes a dead falling remnant
//	                              unless the tail already collapsed
//	hit,    tail,    pos == B  -> playable (attack), keep sustaining
//	hit,    tail,    start >= B-> tail expired, mark dead, drop
//	hit,    tail,    otherwise -> keep (sustaining or falling remnant)
//
// RIPNotes of the successor is exactly the prior live set: the renderer
// erases everything it drew last step and redraws CurrentNotes.
func step(s State) State {
	current := make([]Note, 0, len(s.CurrentNotes))
	playable := []Note{}

	for _, prev := range s.CurrentNotes {
		n := prev.Clone()
		n.Position++
		if nil != n.Tail {
			n.Tail.TailStart++
			if n.Visual {
				n.Tail.TailEnd++
			} else if n.Tail.TailEnd < Boundary {
				n.Tail.TailEnd++
			}
		}

		if nil == n.Tail {
			if n.Position < Boundary {
				current = append(current, n)
			} else if !n.Visual {
				// Auto-triggered at the hit row
				playable = append(playable, n)
			}
			// A visual note at the boundary is a silent miss
			continue
		}

		if n.Visual {
			if n.Position < Boundary {
				current = append(current, n)
			} else if n.Tail.TailStart < Boundary {
				// Missed sustain: converts to falling debris
				n.Visual = false
				n.Tail.Dead = true
				n.Tail.TailEnd = Boundary
				current = append(current, n)
			}
			// Collapsed tail at the boundary: gone entirely
			continue
		}

		if n.Tail.TailStart >= Boundary {
			// The trailing edge caught up: the sustain is spent
			n.Tail.Dead = true
			continue
		}
		if n.Position == Boundary {
			playable = append(playable, n)
		}
		current = append(current, n)
	}

	s.RIPNotes = s.CurrentNotes
	s.CurrentNotes = current
	s.PlayableNotes = playable
	s.GameEnd = s.AllNotesProcessed && len(current) == 0 && len(playable) == 0
	return s
}
