package game

import (
	"math"
	"testing"
	"time"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPressHitScoresAndConsumes(t *testing.T) {
	s := State{CurrentNotes: []Note{note(1, 0, Boundary-1, true)}}
	s = Reduce(s, Press{Column: 0})
	if s.ScoreGained != 1 {
		t.Log("score", s.ScoreGained)
		t.Fail()
	}
	if s.CurrentNotes[0].Visual {
		t.Log("hit note must be consumed")
		t.Fail()
	}
	if s.NoteCount != 1 {
		t.Fail()
	}
}

func TestPressMultiplierSteps(t *testing.T) {
	// combo 10..19 scores 1.2 per hit, 20..29 scores 1.4
	for combo, expected := range map[int]float64{0: 1, 9: 1, 10: 1.2, 25: 1.4, 100: 3} {
		s := State{
			NoteCount:    combo,
			CurrentNotes: []Note{note(1, 2, Boundary-1, true)},
		}
		s = Reduce(s, Press{Column: 2})
		if !almost(s.ScoreGained, expected) {
			t.Log("combo", combo, "scored", s.ScoreGained, "expected", expected)
			t.Fail()
		}
	}
}

func TestPressOutsideWindowIsWrongPress(t *testing.T) {
	s := State{CurrentNotes: []Note{note(1, 0, Boundary-HitWindow-1, true)}}
	s = Reduce(s, Press{Column: 0})
	if s.ScoreGained != 0 || !s.CurrentNotes[0].Visual {
		t.Log("early press must not hit")
		t.Fail()
	}
	if len(s.PlayableNotes) != 1 {
		t.Log("early press must produce exactly one phantom note")
		t.Fail()
	}
}

func TestPressSpecialFeedsBonusPool(t *testing.T) {
	n := note(1, 3, Boundary-2, true)
	n.Special = true
	s := State{CurrentNotes: []Note{n}}
	s = Reduce(s, Press{Column: 3})
	if s.ScoreGained != 0 {
		t.Log("special hits grant no linear score")
		t.Fail()
	}
	if s.BonusActive != BonusGain || s.NoteCount != SpecialCombo {
		t.Log("bonus", s.BonusActive, "combo", s.NoteCount)
		t.Fail()
	}
}

func TestWrongPressSynthesizesOneNote(t *testing.T) {
	s := NewState(42, &Chart{})
	s.BonusActive = 30
	s.NoteCount = 250
	before := s.Hash
	s = Reduce(s, Press{Column: 2})
	if len(s.PlayableNotes) != 1 {
		t.Log("expected exactly one synthetic note", s.PlayableNotes)
		t.FailNow()
	}
	phantom := s.PlayableNotes[0]
	if phantom.Column != 2 || phantom.Visual {
		t.Log("phantom", phantom)
		t.Fail()
	}
	if phantom.Instrument == "" || phantom.Velocity == 0 {
		t.Log("phantom must carry playback parameters", phantom)
		t.Fail()
	}
	if s.NoteCount != 30 {
		t.Log("combo must reset to the bonus pool", s.NoteCount)
		t.Fail()
	}
	if s.Hash == before {
		t.Log("seed must advance on press")
		t.Fail()
	}
}

func TestWrongPressDeterministic(t *testing.T) {
	a := Reduce(NewState(42, &Chart{}), Press{Column: 1})
	b := Reduce(NewState(42, &Chart{}), Press{Column: 1})
	if a.PlayableNotes[0] != b.PlayableNotes[0] {
		t.Log("same seed must synthesize the same note")
		t.Fail()
	}
}

func TestPressOnSustainingColumnIsSilent(t *testing.T) {
	s := State{
		NoteCount:    77,
		CurrentNotes: []Note{sustain(1, 2, Boundary+5, 100, false)},
	}
	s = Reduce(s, Press{Column: 2})
	if len(s.PlayableNotes) != 0 {
		t.Log("no phantom while a tail is sustaining in the column")
		t.Fail()
	}
	if s.NoteCount != 77 {
		t.Log("no penalty while holding a sustain")
		t.Fail()
	}
}

func TestReleaseEndsSustainWithPenalty(t *testing.T) {
	s := State{
		NoteCount:    20,
		ScoreGained:  10,
		BonusActive:  5,
		CurrentNotes: []Note{sustain(1, 1, Boundary+5, 100, false)},
	}
	s = Reduce(s, Release{Column: 1})
	if !s.CurrentNotes[0].Tail.Dead {
		t.Log("released tail must die")
		t.Fail()
	}
	if !almost(s.ScoreGained, 10-1.4) {
		t.Log("penalty", s.ScoreGained)
		t.Fail()
	}
	if s.NoteCount != 5 {
		t.Log("combo must reset to the bonus pool", s.NoteCount)
		t.Fail()
	}
}

func TestReleaseWithNoSustainIsNoop(t *testing.T) {
	s := State{NoteCount: 9, ScoreGained: 3}
	out := Reduce(s, Release{Column: 0})
	if out.ScoreGained != 3 || out.NoteCount != 9 {
		t.Log("release on an empty column must change nothing")
		t.Fail()
	}
}

func TestTickIdleIsIdempotent(t *testing.T) {
	s := State{NoteCount: 12, ScoreGained: 7, Hash: 3}
	out := Reduce(s, Tick{})
	if out.ScoreGained != 7 || out.NoteCount != 12 || out.BonusActive != 0 {
		t.Log("idle tick must not move counters", out)
		t.Fail()
	}
	if out.Hash != 3 {
		t.Log("tick must not touch the seed")
		t.Fail()
	}
	if out.GameEnd {
		t.Fail()
	}
}

func TestBonusDecayCadence(t *testing.T) {
	s := State{BonusActive: 100, NoteCount: 100}
	for i := 0; i <= DecayTicks; i++ {
		s = Reduce(s, Tick{})
	}
	if s.BonusActive != 100-BonusDecay || s.NoteCount != 100-BonusDecay {
		t.Log("bonus", s.BonusActive, "combo", s.NoteCount)
		t.Fail()
	}
	if s.TickInterval != 0 {
		t.Log("decay must reset the cadence counter")
		t.Fail()
	}
}

func TestBonusDecayStopsAtZero(t *testing.T) {
	s := State{}
	for i := 0; i <= 2*DecayTicks; i++ {
		s = Reduce(s, Tick{})
	}
	if s.BonusActive != 0 || s.NoteCount != 0 {
		t.Log("nothing to drain", s.BonusActive, s.NoteCount)
		t.Fail()
	}
}

func TestSpawnSizesTails(t *testing.T) {
	batch := []Note{{
		ID: 1, Column: 1, Visual: true,
		Start: 0, End: 1500 * time.Millisecond,
	}}
	s := Reduce(State{}, SpawnNotes{Notes: batch})
	if len(s.CurrentNotes) != 1 {
		t.FailNow()
	}
	n := s.CurrentNotes[0]
	if nil == n.Tail {
		t.Log("1500ms exceeds the sustain threshold")
		t.FailNow()
	}
	length := int(1500 * time.Millisecond / TickPeriod)
	if n.Tail.TailEnd-n.Tail.TailStart != length {
		t.Log("tail sized", n.Tail.TailEnd-n.Tail.TailStart, "expected", length)
		t.Fail()
	}
	if n.Position != 1 {
		t.Log("spawn must classify the batch in the same instant")
		t.Fail()
	}
	if n.Special {
		t.Log("sustains are never special")
		t.Fail()
	}
}

func TestSpawnRollsSpecialDeterministically(t *testing.T) {
	batch := make([]Note, 200)
	for i := range batch {
		batch[i] = note(int64(i+1), i%NColumns, 0, true)
	}
	a := Reduce(State{Hash: 7}, SpawnNotes{Notes: batch})
	b := Reduce(State{Hash: 7}, SpawnNotes{Notes: batch})
	specials := 0
	for i := range a.CurrentNotes {
		if a.CurrentNotes[i].Special != b.CurrentNotes[i].Special {
			t.Log("special roll must be reproducible")
			t.FailNow()
		}
		if a.CurrentNotes[i].Special {
			specials++
		}
	}
	if specials == 0 || specials > 60 {
		t.Log("implausible special count", specials)
		t.Fail()
	}
	if a.Hash == 7 {
		t.Log("spawn must advance the seed")
		t.Fail()
	}
}

func TestEndOfChartResolvesGame(t *testing.T) {
	s := Reduce(State{}, EndOfChart{})
	if !s.AllNotesProcessed || !s.GameEnd {
		t.Log("empty chart must end immediately", s)
		t.Fail()
	}
}

func TestEndedStateIsTerminal(t *testing.T) {
	s := State{GameEnd: true, ScoreGained: 5}
	for _, a := range []Action{Press{Column: 0}, Release{Column: 1}, Tick{}, SpawnNotes{Notes: []Note{note(1, 0, 0, true)}}, Randomize{}} {
		out := Reduce(s, a)
		if out.ScoreGained != 5 || len(out.CurrentNotes) != 0 {
			t.Log("ended state must ignore", a)
			t.Fail()
		}
	}
}

func TestRandomizeOnlyMovesVisualColumns(t *testing.T) {
	held := sustain(2, 1, Boundary+2, 50, false)
	s := State{
		Hash:         11,
		CurrentNotes: []Note{note(1, 0, 40, true), held, note(3, 3, 80, true)},
	}
	out := Reduce(s, Randomize{})
	if out.Hash == s.Hash {
		t.Log("randomize must advance the seed once")
		t.Fail()
	}
	for i := range out.CurrentNotes {
		n := out.CurrentNotes[i]
		if n.ID != s.CurrentNotes[i].ID || n.Position != s.CurrentNotes[i].Position {
			t.Log("randomize must only touch columns")
			t.Fail()
		}
		if n.Column < 0 || n.Column >= NColumns {
			t.Fail()
		}
	}
	if out.CurrentNotes[1].Column != 1 {
		t.Log("consumed notes keep their column")
		t.Fail()
	}
	if out.CurrentNotes[1].Tail.Dead != held.Tail.Dead {
		t.Log("randomize must not touch tails")
		t.Fail()
	}
	again := Reduce(s, Randomize{})
	for i := range out.CurrentNotes {
		if out.CurrentNotes[i].Column != again.CurrentNotes[i].Column {
			t.Log("randomize must be reproducible for a given seed")
			t.Fail()
		}
	}
}
