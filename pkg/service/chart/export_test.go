package chart

import (
	"io"

	"github.com/secmon-lab/covidboard/pkg/domain/model"
	gochart "github.com/wcharczuk/go-chart/v2"
)

var FormatCount = formatCount

// RenderSVG draws the same chart as RenderPNG so tests can inspect the text
func (r *Renderer) RenderSVG(w io.Writer, set *model.SeriesSet) error {
	graph, err := r.build(set)
	if err != nil {
		return err
	}
	return graph.Render(gochart.SVG, w)
}
