package charts

import (
	"strconv"

	"github.com/fogleman/gg"

	"MoviesETL/internal/domain"
)

type series struct {
	label  string
	color  string
	values []float64
}

// lineChart plots yearly averages of both KPIs on a shared 0..1 axis.
func (r *Renderer) lineChart(averages []domain.YearAverages) *gg.Context {
	area := plotArea{left: 70, top: 60, right: chartWidth - 30, bottom: chartHeight - 50}
	dc := r.frame(area, "Average Profitability Success and General Popularity by Year", "Year", "Average")

	if len(averages) == 0 {
		dc.SetHexColor(colorText)
		dc.SetFontFace(r.face(12))
		dc.DrawStringAnchored("no data", area.left+area.width()/2, area.top+area.height()/2, 0.5, 0.5)
		return dc
	}

	firstYear, lastYear := averages[0].Year, averages[len(averages)-1].Year
	xLo, xHi := float64(firstYear), float64(lastYear)

	tickFace := r.face(10)
	dc.SetFontFace(tickFace)
	for _, tick := range unitTicks(1) {
		y := area.y(tick, 0, 1)
		dc.SetHexColor(colorGrid)
		dc.DrawLine(area.left, y, area.right, y)
		dc.Stroke()
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(formatTick(tick), area.left-8, y, 1, 0.5)
	}

	step := yearStep(lastYear-firstYear, 10)
	for year := firstYear; year <= lastYear; year += step {
		x := area.x(float64(year), xLo, xHi)
		dc.SetHexColor(colorGrid)
		dc.DrawLine(x, area.top, x, area.bottom)
		dc.Stroke()
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(strconv.Itoa(year), x, area.bottom+14, 0.5, 0.5)
	}

	all := []series{
		{label: "Profitability Success", color: colorBlue, values: make([]float64, len(averages))},
		{label: "General Popularity", color: colorOrange, values: make([]float64, len(averages))},
	}
	for i, row := range averages {
		all[0].values[i] = row.AvgProfitabilitySuccess
		all[1].values[i] = row.AvgGeneralPopularity
	}

	for _, s := range all {
		dc.SetHexColor(s.color)
		dc.SetLineWidth(2)
		for i, v := range s.values {
			x := area.x(float64(averages[i].Year), xLo, xHi)
			y := area.y(v, 0, 1)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	r.legend(dc, area, all)
	return dc
}

func (r *Renderer) legend(dc *gg.Context, area plotArea, all []series) {
	const (
		boxWidth = 170
		rowH     = 18
	)
	x := area.right - boxWidth - 10
	y := area.top + 10

	dc.SetHexColor("#ffffff")
	dc.DrawRectangle(x, y, boxWidth, float64(rowH*len(all)+8))
	dc.FillPreserve()
	dc.SetHexColor(colorFrame)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetFontFace(r.face(10))
	for i, s := range all {
		cy := y + 4 + float64(rowH*i) + rowH/2
		dc.SetHexColor(s.color)
		dc.SetLineWidth(2)
		dc.DrawLine(x+8, cy, x+32, cy)
		dc.Stroke()
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(s.label, x+40, cy, 0, 0.5)
	}
}
