package chart

import (
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const legendFontSize = 10

// Renderer draws series sets as PNG line charts
type Renderer struct {
	cfg model.ChartConfig
}

// New creates a renderer for the chart configuration
func New(cfg model.ChartConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// RenderPNG writes the chart of the set to w
func (r *Renderer) RenderPNG(w io.Writer, set *model.SeriesSet) error {
	graph, err := r.build(set)
	if err != nil {
		return err
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return goerr.Wrap(err, "failed to render chart", goerr.V("title", set.Title))
	}
	return nil
}

func (r *Renderer) build(set *model.SeriesSet) (*gochart.Chart, error) {
	if set == nil || len(set.Series) == 0 {
		return nil, goerr.New("nothing to draw", goerr.T(model.ErrTagInvalidRequest))
	}
	// A line needs two points on the time axis
	if set.Dates.Len() < 2 {
		return nil, goerr.New("chart needs at least two dates",
			goerr.T(model.ErrTagInvalidRequest),
			goerr.V("dates", set.Dates.Len()))
	}

	xValues := make([]time.Time, set.Dates.Len())
	for i, opt := range set.Dates {
		xValues[i] = opt.Date
	}

	fontColor := drawing.ColorFromHex(strings.TrimPrefix(r.cfg.FontColor, "#"))
	textStyle := gochart.Style{
		FontSize:  r.cfg.FontSize,
		FontColor: fontColor,
	}

	lines := make([]gochart.Series, 0, len(set.Series))
	for i, s := range set.Series {
		yValues := make([]float64, len(s.Values))
		for j, v := range s.Values {
			yValues[j] = float64(v)
		}
		lines = append(lines, gochart.TimeSeries{
			Name: s.Name,
			Style: gochart.Style{
				StrokeColor: gochart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
			XValues: xValues,
			YValues: yValues,
		})
	}

	// go-chart rejects a zero-height y range, e.g. all counts are 0
	yRange := &gochart.ContinuousRange{Min: 0, Max: float64(set.MaxValue())}
	if yRange.Max <= 0 {
		yRange.Max = 1
	}

	graph := &gochart.Chart{
		Title:      set.Title,
		TitleStyle: textStyle,
		Width:      r.cfg.Width,
		Height:     r.cfg.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           set.XAxisTitle,
			NameStyle:      textStyle,
			Style:          gochart.Style{FontColor: fontColor},
			ValueFormatter: gochart.TimeValueFormatterWithFormat(model.DisplayDateLayout),
		},
		YAxis: gochart.YAxis{
			Name:      set.YAxisTitle,
			NameStyle: textStyle,
			Style:     gochart.Style{FontColor: fontColor},
			Range:     yRange,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return formatCount(int64(f))
				}
				return ""
			},
		},
		Series: lines,
	}
	legendStyle := gochart.Style{
		FontSize:  legendFontSize,
		FontColor: fontColor,
	}
	graph.Elements = []gochart.Renderable{titledLegend(graph, set.LegendTitle, legendStyle)}

	return graph, nil
}
