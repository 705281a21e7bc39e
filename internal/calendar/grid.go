// Package calendar maps a life onto a grid of one row per year and one cell
// per week, and places periods and date markers on it.
//
// Years are approximated as 365.25 days. Row boundaries therefore drift up to
// a day away from the literal anniversary, but the error does not accumulate.
package calendar

import (
	"fmt"
	"math"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
)

// NoPeriod is the PeriodIndex of a cell outside every period.
const NoPeriod = -1

// Cell is one week of life.
type Cell struct {
	Date lifeconfig.Date

	// Period points into the slice given to BuildGridRows, nil when unassigned.
	Period      *lifeconfig.LifePeriod
	PeriodIndex int
}

// Row is one year of life, always WeeksPerRow cells long.
type Row struct {
	Year  int
	Cells []Cell
}

// CellDate returns the first day of week `week` in year `year` of a life
// starting at birth: birth + floor(year*365.25 + week*7) days.
func CellDate(birth lifeconfig.Date, year, week int) lifeconfig.Date {
	days := math.Floor(float64(year)*config.DaysPerYear + float64(week*config.DaysPerWeek))
	return birth.AddDays(int(days))
}

// span is a period with its bounds parsed once.
type span struct {
	start, end lifeconfig.Date
	ok         bool
}

func spans(periods []lifeconfig.LifePeriod) []span {
	out := make([]span, len(periods))
	for i, p := range periods {
		start, errStart := lifeconfig.ParseDate(p.Start)
		end, errEnd := lifeconfig.ParseDate(p.End)
		out[i] = span{start: start, end: end, ok: errStart == nil && errEnd == nil}
	}
	return out
}

func firstMatch(d lifeconfig.Date, ss []span) int {
	for i, s := range ss {
		if s.ok && !d.Before(s.start) && !d.After(s.end) {
			return i
		}
	}
	return NoPeriod
}

// FindPeriod returns the index of the first period, in list order, whose
// inclusive [Start, End] range contains d. Overlaps are resolved by list
// order, not by which period is more specific. Periods with an unparsable
// bound never match.
func FindPeriod(d lifeconfig.Date, periods []lifeconfig.LifePeriod) (int, bool) {
	i := firstMatch(d, spans(periods))
	return i, i != NoPeriod
}

// BuildGridRows computes totalYears rows of WeeksPerRow cells each.
func BuildGridRows(birth lifeconfig.Date, totalYears int, periods []lifeconfig.LifePeriod) []Row {
	if totalYears < 0 {
		totalYears = 0
	}
	ss := spans(periods)
	rows := make([]Row, totalYears)
	for year := range rows {
		cells := make([]Cell, config.WeeksPerRow)
		for week := range cells {
			d := CellDate(birth, year, week)
			idx := firstMatch(d, ss)
			cell := Cell{Date: d, PeriodIndex: idx}
			if idx != NoPeriod {
				cell.Period = &periods[idx]
			}
			cells[week] = cell
		}
		rows[year] = Row{Year: year, Cells: cells}
	}
	return rows
}

// Grid builds the rows for a whole configuration.
func Grid(cfg lifeconfig.LifeConfig) ([]Row, error) {
	birth, err := cfg.BirthDate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBirthdate, err)
	}
	return BuildGridRows(birth, cfg.TotalYears, cfg.Periods), nil
}
