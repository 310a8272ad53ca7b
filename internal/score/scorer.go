package score

import (
	"git.lost.host/meutraa/rain/internal/game"
)

type Scorer interface {
	Init() error
	Deinit()

	// Save the result of a finished run
	Save(chart *game.Chart, result *Result)

	// Load previous results for the chart
	Load(chart *game.Chart) []History

	// Replay folds a recorded run back through the reducer
	Replay(chart *game.Chart, history *History) game.State
}

type Result struct {
	Score  float64
	Combo  int
	Seed   uint64
	Inputs *[]game.Input
}

type History struct {
	Sum    string
	Score  float64
	Combo  int
	Seed   uint64
	Inputs *[]game.Input
}
