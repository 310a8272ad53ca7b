package theme

import (
	"fmt"
	"image/color"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(column int, special bool) string {
	c := columnColors[column]
	if special {
		c = specialColor
	}
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, noteSym)
}

func (t *DefaultTheme) RenderTail(dead bool) string {
	c := tailColor
	if dead {
		c = deadColor
	}
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, tailSym)
}

func (t *DefaultTheme) RenderHitField(column int) string {
	return barSyms[column]
}

const (
	noteSym = "⬤"
	tailSym = "┃"
)

var (
	barSyms      = [...]string{"-", "-", "-", "-"}
	columnColors = [...]color.RGBA{
		{R: 236, G: 30, B: 0},   // red
		{R: 0, G: 118, B: 236},  // blue
		{R: 236, G: 195, B: 0},  // yellow
		{R: 0, G: 236, B: 128},  // green
	}
	specialColor = color.RGBA{R: 236, G: 0, B: 106}   // pink
	tailColor    = color.RGBA{R: 173, G: 236, B: 236} // light blue
	deadColor    = color.RGBA{R: 106, G: 106, B: 106} // grey
)
