package parser

import "git.lost.host/meutraa/rain/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
