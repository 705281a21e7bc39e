package calendar

import (
	"math"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
)

// CellPos addresses one cell of the grid.
type CellPos struct {
	Row  int
	Week int
}

// MarkerRow returns the grid row holding d. The result is not clamped: it is
// negative before birth and may exceed the grid height.
func MarkerRow(birth, d lifeconfig.Date) int {
	return int(math.Floor(float64(d.DaysSince(birth)) / config.DaysPerYear))
}

// MarkerCell returns the cell holding d. The week is clamped to the last
// column because a 365.25-day row is slightly longer than 52 weeks; the row
// is left as is, like MarkerRow.
func MarkerCell(birth, d lifeconfig.Date) CellPos {
	diff := float64(d.DaysSince(birth))
	row := math.Floor(diff / config.DaysPerYear)
	dayInYear := diff - row*config.DaysPerYear
	week := int(math.Floor(dayInYear / config.DaysPerWeek))
	if week > config.WeeksPerRow-1 {
		week = config.WeeksPerRow - 1
	}
	return CellPos{Row: int(row), Week: week}
}

// Placement is where a list of markers lands on a grid.
type Placement struct {
	// RowMarkers holds the annotation of each row. When several markers
	// share a row the last one in list order wins.
	RowMarkers map[int]lifeconfig.DateMarker

	// Stars lists, per starred cell, the indices of the markers on it.
	Stars map[CellPos][]int
}

// Starred reports whether a marker falls on the given cell.
func (p Placement) Starred(row, week int) bool {
	_, ok := p.Stars[CellPos{Row: row, Week: week}]
	return ok
}

// PlaceMarkers positions markers on a grid of totalYears rows. Markers with an
// empty or unparsable date and markers outside the grid are dropped.
func PlaceMarkers(birth lifeconfig.Date, totalYears int, markers []lifeconfig.DateMarker) Placement {
	p := Placement{
		RowMarkers: make(map[int]lifeconfig.DateMarker),
		Stars:      make(map[CellPos][]int),
	}
	for i, m := range markers {
		if m.Date == "" {
			continue
		}
		d, err := lifeconfig.ParseDate(m.Date)
		if err != nil {
			continue
		}
		pos := MarkerCell(birth, d)
		if pos.Row < 0 || pos.Row >= totalYears {
			continue
		}
		p.RowMarkers[pos.Row] = m
		p.Stars[pos] = append(p.Stars[pos], i)
	}
	return p
}

// TodayMarker is the synthetic marker drawn when a configuration asks to show
// the current day. It is an ordinary marker as far as the grid is concerned.
func TodayMarker(today lifeconfig.Date) lifeconfig.DateMarker {
	return lifeconfig.DateMarker{Date: today.String(), Title: config.TodayMarkerTitle}
}

// Markers returns the configured markers followed by the today marker when
// cfg.ShowToday is set. cfg is not modified.
func Markers(cfg lifeconfig.LifeConfig, today lifeconfig.Date) []lifeconfig.DateMarker {
	out := make([]lifeconfig.DateMarker, 0, len(cfg.Dates)+1)
	out = append(out, cfg.Dates...)
	if cfg.TodayVisible() {
		out = append(out, TodayMarker(today))
	}
	return out
}
