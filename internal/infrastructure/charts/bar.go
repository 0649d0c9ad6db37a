package charts

import (
	"fmt"
	"strconv"

	"github.com/fogleman/gg"

	"MoviesETL/internal/domain"
)

// barChart draws one horizontal bar per year, labelled with the winning title.
func (r *Renderer) barChart(top []domain.YearTopMovie) *gg.Context {
	area := plotArea{left: 70, top: 60, right: chartWidth - 30, bottom: chartHeight - 50}

	title := "Movies with Highest Profitability Success per Year"
	if len(top) > 0 {
		title = fmt.Sprintf("%s (%d-%d)", title, top[0].Year, top[len(top)-1].Year)
	}
	dc := r.frame(area, title, "Profitability Success", "Year")

	if len(top) == 0 {
		dc.SetHexColor(colorText)
		dc.SetFontFace(r.face(12))
		dc.DrawStringAnchored("no data", area.left+area.width()/2, area.top+area.height()/2, 0.5, 0.5)
		return dc
	}

	xMax := 0.0
	for _, row := range top {
		xMax = max(xMax, row.ProfitabilitySuccess)
	}
	if xMax <= 0 {
		xMax = 1
	}
	xMax *= 1.05

	tickFace := r.face(10)
	dc.SetFontFace(tickFace)
	for _, tick := range unitTicks(xMax) {
		x := area.x(tick, 0, xMax)
		dc.SetHexColor(colorGrid)
		dc.DrawLine(x, area.top, x, area.bottom)
		dc.Stroke()
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(formatTick(tick), x, area.bottom+14, 0.5, 0.5)
	}

	slot := area.height() / float64(len(top))
	barHeight := slot * 0.8
	labelFace := r.face(9)
	for i, row := range top {
		y := area.top + slot*float64(i) + (slot-barHeight)/2
		end := area.x(row.ProfitabilitySuccess, 0, xMax)

		dc.SetHexColor(colorBlue)
		dc.DrawRectangle(area.left, y, end-area.left, barHeight)
		dc.Fill()

		dc.SetHexColor(colorText)
		dc.SetFontFace(tickFace)
		dc.DrawStringAnchored(strconv.Itoa(row.Year), area.left-8, y+barHeight/2, 1, 0.5)

		dc.SetFontFace(labelFace)
		w, _ := dc.MeasureString(row.Title)
		x, anchor, inside := area.barLabel(end, w)
		if inside {
			dc.SetHexColor("#ffffff")
		}
		dc.DrawStringAnchored(row.Title, x, y+barHeight/2, anchor, 0.5)
	}

	return dc
}

const labelPad = 4

// barLabel places a label of width w for a bar ending at end. It goes after
// the bar when it fits in the frame, inside the bar when the bar is wide
// enough, and otherwise after the bar running past the frame.
func (p plotArea) barLabel(end, w float64) (x, anchor float64, inside bool) {
	if end+labelPad+w <= p.right {
		return end + labelPad, 0, false
	}
	if end-labelPad-w >= p.left {
		return end - labelPad, 1, true
	}
	return end + labelPad, 0, false
}
