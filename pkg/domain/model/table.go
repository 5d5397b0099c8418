package model

import (
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
)

const (
	// ColumnState is the state identity column
	ColumnState = "Province_State"
	// ColumnCounty is the county identity column
	ColumnCounty = "Admin2"

	columnRow = "_row"
)

// RawTable is the wide confirmed-cases table: one row per region, one column per date.
// Identity columns stay in a dataframe; date columns are held as a dense count matrix.
type RawTable struct {
	ids    dataframe.DataFrame
	counts [][]int64
	axis   DateAxis
	states []types.StateName
}

// ParseRawTable reads the CSV form of the raw table
func ParseRawTable(r io.Reader) (*RawTable, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// Identity text such as Admin2 "NA" is kept as written
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, goerr.Wrap(df.Err, "failed to parse raw table",
			goerr.T(ErrTagDataUnavailable))
	}

	return newRawTable(df)
}

func newRawTable(df dataframe.DataFrame) (*RawTable, error) {
	names := df.Names()
	if !contains(names, ColumnState) || !contains(names, ColumnCounty) {
		return nil, goerr.New("raw table lacks identity columns",
			goerr.T(ErrTagDataUnavailable),
			goerr.V("required", []string{ColumnState, ColumnCounty}))
	}

	axis := NewDateAxis(names)
	if axis.Len() == 0 {
		return nil, goerr.New("raw table has no date columns",
			goerr.T(ErrTagDataUnavailable),
			goerr.V("columns", len(names)))
	}

	var identity []string
	for _, name := range names {
		if _, ok := ParseDateColumn(name); !ok {
			identity = append(identity, name)
		}
	}

	nrow := df.Nrow()
	counts := make([][]int64, nrow)
	for i := range counts {
		counts[i] = make([]int64, axis.Len())
	}
	for j, opt := range axis {
		for i, v := range df.Col(opt.Column).Float() {
			if math.IsNaN(v) || v < 0 {
				continue
			}
			counts[i][j] = int64(v)
		}
	}

	rowIndex := make([]int, nrow)
	for i := range rowIndex {
		rowIndex[i] = i
	}
	ids := df.Select(identity).Mutate(series.New(rowIndex, series.Int, columnRow))
	if ids.Err != nil {
		return nil, goerr.Wrap(ids.Err, "failed to build identity frame",
			goerr.T(ErrTagDataUnavailable))
	}

	t := &RawTable{
		ids:    ids,
		counts: counts,
		axis:   axis,
	}

	seen := make(map[types.StateName]bool)
	for _, s := range ids.Col(ColumnState).Records() {
		state := types.StateName(s)
		if isBlank(s) || seen[state] {
			continue
		}
		seen[state] = true
		t.states = append(t.states, state)
	}

	return t, nil
}

// Rows returns the number of region rows
func (t *RawTable) Rows() int {
	return len(t.counts)
}

// DateAxis returns the ordered date columns of the table
func (t *RawTable) DateAxis() DateAxis {
	return t.axis
}

// DateTimeValues returns the display labels of the date columns and their count
func (t *RawTable) DateTimeValues() ([]string, int) {
	return t.axis.Labels(), t.axis.Len()
}

// States returns the distinct state values in first-seen order
func (t *RawTable) States() []types.StateName {
	states := make([]types.StateName, len(t.states))
	copy(states, t.states)
	return states
}

// HasState reports whether any row belongs to the state
func (t *RawTable) HasState(state types.StateName) bool {
	for _, s := range t.states {
		if s == state {
			return true
		}
	}
	return false
}

// Counties returns the distinct counties tracked for a state, sorted by name
func (t *RawTable) Counties(state types.StateName) []types.CountyName {
	counties := []types.CountyName{}
	if state == "" {
		return counties
	}

	rows := t.filter(dataframe.F{Colname: ColumnState, Comparator: series.Eq, Comparando: state.String()})
	if rows.Nrow() == 0 {
		return counties
	}

	seen := make(map[types.CountyName]bool)
	for _, c := range rows.Col(ColumnCounty).Records() {
		county := types.CountyName(c)
		if isBlank(c) || seen[county] {
			continue
		}
		seen[county] = true
		counties = append(counties, county)
	}

	sort.Slice(counties, func(i, j int) bool { return counties[i] < counties[j] })
	return counties
}

// HasCounties reports whether the selection is non-empty and every county exists for the state
func (t *RawTable) HasCounties(state types.StateName, selected []types.CountyName) bool {
	if len(selected) == 0 {
		return false
	}

	present := make(map[types.CountyName]bool)
	for _, c := range t.Counties(state) {
		present[c] = true
	}
	for _, c := range selected {
		if !present[c] {
			return false
		}
	}
	return true
}

// AggregateState builds the per-county (or whole state) series over [from, to].
// An empty selection, or one naming a county absent from the state, yields the state total.
func (t *RawTable) AggregateState(state types.StateName, counties []types.CountyName, from, to time.Time) *SeriesSet {
	dates := t.axis.Between(from, to)
	set := &SeriesSet{Dates: dates, Series: []Series{}}

	stateRows := t.filter(dataframe.F{Colname: ColumnState, Comparator: series.Eq, Comparando: state.String()})

	selected := uniqueCounties(counties)
	if !t.HasCounties(state, selected) {
		set.Series = append(set.Series, t.sumRows(state.String(), rowIndexes(stateRows), dates))
		return set
	}

	names := make([]string, len(selected))
	for i, c := range selected {
		names[i] = c.String()
	}
	countyRows := filterFrame(stateRows, dataframe.F{Colname: ColumnCounty, Comparator: series.In, Comparando: names})

	byCounty := make(map[types.CountyName][]int)
	if indexes := rowIndexes(countyRows); len(indexes) > 0 {
		for i, c := range countyRows.Col(ColumnCounty).Records() {
			county := types.CountyName(c)
			byCounty[county] = append(byCounty[county], indexes[i])
		}
	}

	for _, c := range selected {
		set.Series = append(set.Series, t.sumRows(c.String(), byCounty[c], dates))
	}
	return set
}

// AggregateAllStates builds one series per state over [from, to], summing all counties of each state
func (t *RawTable) AggregateAllStates(from, to time.Time) *SeriesSet {
	dates := t.axis.Between(from, to)
	set := &SeriesSet{Dates: dates, Series: []Series{}}

	byState := make(map[types.StateName][]int)
	if indexes := rowIndexes(t.ids); len(indexes) > 0 {
		for i, s := range t.ids.Col(ColumnState).Records() {
			state := types.StateName(s)
			byState[state] = append(byState[state], indexes[i])
		}
	}

	for _, state := range t.states {
		set.Series = append(set.Series, t.sumRows(state.String(), byState[state], dates))
	}
	return set
}

func (t *RawTable) sumRows(name string, rows []int, dates DateAxis) Series {
	values := make([]int64, len(dates))
	for _, row := range rows {
		for i, opt := range dates {
			values[i] += t.counts[row][opt.Index]
		}
	}
	return Series{Name: name, Values: values}
}

func (t *RawTable) filter(filters ...dataframe.F) dataframe.DataFrame {
	return filterFrame(t.ids, filters...)
}

func filterFrame(df dataframe.DataFrame, filters ...dataframe.F) dataframe.DataFrame {
	for _, f := range filters {
		if df.Nrow() == 0 {
			return df
		}
		df = df.Filter(f)
		if df.Err != nil {
			// gota reports an empty selection as an error
			return dataframe.New()
		}
	}
	return df
}

func rowIndexes(df dataframe.DataFrame) []int {
	if df.Nrow() == 0 {
		return nil
	}
	indexes, err := df.Col(columnRow).Int()
	if err != nil {
		return nil
	}
	return indexes
}

func uniqueCounties(counties []types.CountyName) []types.CountyName {
	seen := make(map[types.CountyName]bool)
	var result []types.CountyName
	for _, c := range counties {
		if seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
	}
	return result
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
