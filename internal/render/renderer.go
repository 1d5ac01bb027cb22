package render

import (
	"image/color"
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (columns, rows int, err error)
	AddDecoration(col, row int, content string, frames int)
	RenderLoop(framePeriod time.Duration, render func() bool)
	Fill(row, column int, message string)
	FillColor(row, column int, color color.RGBA, message string)
	Clear()
}
