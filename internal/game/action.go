package game

// Action is the closed set of state transitions. The marker method keeps
// the set auditable: only this package can add variants, and Reduce
// switches over all of them.
type Action interface {
	action()
}

// Press is a key press on one of the four columns.
type Press struct {
	Column int
}

// Release is a key release, ending any sustain held in the column.
type Release struct {
	Column int
}

// Tick advances the simulation by one fixed step.
type Tick struct{}

// SpawnNotes introduces one batch of equal-start chart notes.
type SpawnNotes struct {
	Notes []Note
}

// EndOfChart marks the chart exhausted; no further spawns will arrive.
type EndOfChart struct{}

// Randomize reassigns the column of every still-visual note.
type Randomize struct{}

func (Press) action()      {}
func (Release) action()    {}
func (Tick) action()       {}
func (SpawnNotes) action() {}
func (EndOfChart) action() {}
func (Randomize) action()  {}
