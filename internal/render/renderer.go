package render

import (
	"image/color"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(col, row int, content string, frames int)
	Fill(row, column int, message string)
	FillColor(row, column int, color color.RGBA, message string)
	Flush()
}
