package model

// Series is the case counts of one county or state, aligned with SeriesSet.Dates
type Series struct {
	Name   string  `json:"name"`
	Values []int64 `json:"values"`
}

// SeriesSet is a date-indexed table of series ready for charting
type SeriesSet struct {
	Title       string   `json:"title"`
	XAxisTitle  string   `json:"x_axis_title"`
	YAxisTitle  string   `json:"y_axis_title"`
	LegendTitle string   `json:"legend_title"`
	Dates       DateAxis `json:"dates"`
	Series      []Series `json:"series"`
}

// Column returns the series with the given name
func (s *SeriesSet) Column(name string) (Series, bool) {
	for _, series := range s.Series {
		if series.Name == name {
			return series, true
		}
	}
	return Series{}, false
}

// Names returns the series names in output order
func (s *SeriesSet) Names() []string {
	names := make([]string, len(s.Series))
	for i, series := range s.Series {
		names[i] = series.Name
	}
	return names
}

// MaxValue returns the largest count across all series
func (s *SeriesSet) MaxValue() int64 {
	var max int64
	for _, series := range s.Series {
		for _, v := range series.Values {
			if v > max {
				max = v
			}
		}
	}
	return max
}
