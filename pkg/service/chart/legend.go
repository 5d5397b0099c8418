package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
)

const legendTitleGap = 4

// titledLegend draws title above the series legend in the top-left corner of the plot area
func titledLegend(c *gochart.Chart, title string, style gochart.Style) gochart.Renderable {
	legend := gochart.Legend(c, style)
	if title == "" {
		return legend
	}

	return func(r gochart.Renderer, cb gochart.Box, defaults gochart.Style) {
		titleStyle := style.InheritFrom(defaults)
		titleStyle.WriteTextOptionsToRenderer(r)

		tb := r.MeasureText(title)
		r.Text(title, cb.Left, cb.Top+tb.Height())

		cb.Top += tb.Height() + legendTitleGap
		legend(r, cb, defaults)
	}
}
