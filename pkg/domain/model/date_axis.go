package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// SourceDateLayout is the header format of date columns in the raw table (M/D/YY)
	SourceDateLayout = "1/2/06"
	// DisplayDateLayout is the label format shown in the date selectors (%d %b, %Y)
	DisplayDateLayout = "02 Jan, 2006"
)

// DateOption pairs a selector position with its label and calendar date
type DateOption struct {
	Index  int       `json:"index"`
	Label  string    `json:"label"`
	Column string    `json:"column"`
	Date   time.Time `json:"date"`
}

// DateAxis is the ordered list of date columns of a raw table
type DateAxis []DateOption

// ParseDateColumn parses a raw table header as a date column
func ParseDateColumn(column string) (time.Time, bool) {
	d, err := time.Parse(SourceDateLayout, column)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// NewDateAxis builds the axis from the header, keeping only date columns in their original order
func NewDateAxis(columns []string) DateAxis {
	axis := DateAxis{}
	for _, col := range columns {
		d, ok := ParseDateColumn(col)
		if !ok {
			continue
		}
		axis = append(axis, DateOption{
			Index:  len(axis),
			Label:  d.Format(DisplayDateLayout),
			Column: col,
			Date:   d,
		})
	}
	return axis
}

// Len returns the number of dates
func (a DateAxis) Len() int {
	return len(a)
}

// At returns the option at a selector position
func (a DateAxis) At(i int) (DateOption, bool) {
	if i < 0 || i >= len(a) {
		return DateOption{}, false
	}
	return a[i], true
}

// Labels returns the display labels in axis order
func (a DateAxis) Labels() []string {
	labels := make([]string, len(a))
	for i, opt := range a {
		labels[i] = opt.Label
	}
	return labels
}

// Between returns the options whose date lies in [from, to]
func (a DateAxis) Between(from, to time.Time) DateAxis {
	from, to = truncateDay(from), truncateDay(to)
	selected := DateAxis{}
	for _, opt := range a {
		if opt.Date.Before(from) || opt.Date.After(to) {
			continue
		}
		selected = append(selected, opt)
	}
	return selected
}

// TimeRange is a resolved pair of selector positions
type TimeRange struct {
	From DateOption `json:"from"`
	To   DateOption `json:"to"`
}

// ValidateRange checks the selector positions before any data is touched
func ValidateRange(from, to int) error {
	if from >= to {
		return goerr.New(MsgInvalidTimeRange,
			goerr.T(ErrTagInvalidTimeRange),
			goerr.V("from", from),
			goerr.V("to", to))
	}
	return nil
}

// ResolveRange turns selector positions into calendar dates
func (a DateAxis) ResolveRange(from, to int) (*TimeRange, error) {
	if err := ValidateRange(from, to); err != nil {
		return nil, err
	}

	fromOpt, ok := a.At(from)
	if !ok {
		return nil, goerr.New("from position is out of the date axis",
			goerr.T(ErrTagInvalidRequest),
			goerr.V("from", from),
			goerr.V("length", a.Len()))
	}
	toOpt, ok := a.At(to)
	if !ok {
		return nil, goerr.New("to position is out of the date axis",
			goerr.T(ErrTagInvalidRequest),
			goerr.V("to", to),
			goerr.V("length", a.Len()))
	}

	return &TimeRange{From: fromOpt, To: toOpt}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
