package interfaces

import (
	"io"

	"github.com/secmon-lab/covidboard/pkg/domain/model"
)

// ChartRenderer draws a series set as an image
type ChartRenderer interface {
	RenderPNG(w io.Writer, set *model.SeriesSet) error
}

// Exporter writes a series set as a downloadable document
type Exporter interface {
	Export(w io.Writer, set *model.SeriesSet) error
}
