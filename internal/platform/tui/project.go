package tui

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// hudRows is the number of screen rows reserved above the playfield.
const hudRows = 1

// Projection maps world coordinates onto screen cells.
// The world is centered on the origin with y up; the screen has its
// origin at the top-left with rows growing down.
type Projection struct {
	cfg    config.RunnerConfig
	width  int
	height int
	sx, sy float64
}

// NewProjection fits the playfield into a width x height screen below the HUD.
func NewProjection(cfg config.RunnerConfig, width, height int) Projection {
	rows := max(height-hudRows, 1)
	return Projection{
		cfg:    cfg,
		width:  width,
		height: height,
		sx:     float64(width) / cfg.PlayfieldWidth,
		sy:     float64(rows) / cfg.PlayfieldHeight,
	}
}

func (p Projection) col(x float64) float64 {
	return (x + p.cfg.PlayfieldWidth/2) * p.sx
}

func (p Projection) row(y float64) float64 {
	return (p.cfg.PlayfieldHeight/2-y)*p.sy + hudRows
}

// Rect returns the cells covered by b. Every visible box covers at least one cell.
func (p Projection) Rect(b core.Box) core.Rect {
	x0 := int(math.Floor(p.col(b.Left())))
	x1 := int(math.Ceil(p.col(b.Right())))
	y0 := int(math.Floor(p.row(b.Top())))
	y1 := int(math.Ceil(p.row(b.Bottom())))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// GroundRow returns the first screen row of the ground band.
func (p Projection) GroundRow() int {
	return int(math.Round(p.row(p.cfg.GroundLine())))
}
