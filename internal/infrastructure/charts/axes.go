package charts

import (
	"math"
	"strconv"

	"github.com/fogleman/gg"
)

const (
	colorBlue   = "#1f77b4"
	colorOrange = "#ff7f0e"
	colorGrid   = "#dddddd"
	colorText   = "#262626"
	colorFrame  = "#bbbbbb"
)

// plotArea is the data rectangle inside the chart margins, in pixels.
type plotArea struct {
	left, top, right, bottom float64
}

func (p plotArea) width() float64  { return p.right - p.left }
func (p plotArea) height() float64 { return p.bottom - p.top }

// x maps v in [lo, hi] onto the horizontal pixel range.
func (p plotArea) x(v, lo, hi float64) float64 {
	if hi == lo {
		return p.left + p.width()/2
	}
	return p.left + (v-lo)/(hi-lo)*p.width()
}

// y maps v in [lo, hi] onto the vertical pixel range, lo at the bottom.
func (p plotArea) y(v, lo, hi float64) float64 {
	if hi == lo {
		return p.top + p.height()/2
	}
	return p.bottom - (v-lo)/(hi-lo)*p.height()
}

// frame paints the background and the title and axis labels shared by both charts.
func (r *Renderer) frame(area plotArea, title, xLabel, yLabel string) *gg.Context {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	dc.SetHexColor(colorText)
	dc.SetFontFace(r.face(15))
	dc.DrawStringAnchored(title, chartWidth/2, area.top/2, 0.5, 0.5)

	dc.SetFontFace(r.face(12))
	dc.DrawStringAnchored(xLabel, area.left+area.width()/2, chartHeight-18, 0.5, 0.5)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 18, area.top+area.height()/2)
	dc.DrawStringAnchored(yLabel, 18, area.top+area.height()/2, 0.5, 0.5)
	dc.Pop()

	dc.SetHexColor(colorFrame)
	dc.SetLineWidth(1)
	dc.DrawRectangle(area.left, area.top, area.width(), area.height())
	dc.Stroke()

	return dc
}

// unitTicks returns 0, 0.2, ..., 1 scaled to hi.
func unitTicks(hi float64) []float64 {
	ticks := make([]float64, 0, 6)
	for i := 0; i <= 5; i++ {
		ticks = append(ticks, hi*float64(i)/5)
	}
	return ticks
}

// yearStep picks a label interval so at most maxLabels years are printed.
func yearStep(span, maxLabels int) int {
	if span <= 0 || maxLabels <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(float64(span+1)/float64(maxLabels))))
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
