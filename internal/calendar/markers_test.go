package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/calendar"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/tartampluch/go-lifeweeks/internal/palette"
)

func TestMarkerRow(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"1990-06-15", 0},
		{"1991-06-14", 0},
		{"1991-06-15", 0}, // day 365 < 365.25
		{"1991-06-16", 1},
		{"2000-06-15", 10}, // day 3653 >= 3652.5
		{"1990-06-14", -1},
		{"2200-01-01", 209},
		{"2400-01-01", 409},  // 149584 days
		{"1500-01-01", -491}, // -179134 days
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := calendar.MarkerRow(birth, lifeconfig.MustParseDate(tt.date))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkerCell(t *testing.T) {
	pos := calendar.MarkerCell(birth, birth)
	assert.Equal(t, calendar.CellPos{Row: 0, Week: 0}, pos)

	pos = calendar.MarkerCell(birth, lifeconfig.MustParseDate("1990-06-22"))
	assert.Equal(t, calendar.CellPos{Row: 0, Week: 1}, pos)

	pos = calendar.MarkerCell(birth, lifeconfig.MustParseDate("1990-06-14"))
	assert.Equal(t, -1, pos.Row, "rows before birth are reported, not clamped")

	pos = calendar.MarkerCell(birth, lifeconfig.MustParseDate("2400-01-01"))
	assert.Equal(t, 409, pos.Row)
	pos = calendar.MarkerCell(birth, lifeconfig.MustParseDate("1500-01-01"))
	assert.Equal(t, -491, pos.Row)
}

func TestMarkerCell_ClampsFractionalWeek(t *testing.T) {
	// Days 364 and 365 of the first row fall in the 53rd week of 7 days.
	for _, date := range []string{"1991-06-14", "1991-06-15"} {
		pos := calendar.MarkerCell(birth, lifeconfig.MustParseDate(date))
		assert.Equal(t, 0, pos.Row, date)
		assert.Equal(t, 51, pos.Week, date)
	}

	// Sweep every day of a long life: the week never leaves the row.
	for day := 0; day < 100*366; day++ {
		pos := calendar.MarkerCell(birth, birth.AddDays(day))
		require.GreaterOrEqual(t, pos.Week, 0)
		require.LessOrEqual(t, pos.Week, 51)
	}
}

func TestPlaceMarkers(t *testing.T) {
	markers := []lifeconfig.DateMarker{
		{Date: "1990-06-15", Title: "Born"},
		{Date: "", Title: "No date"},
		{Date: "garbage", Title: "Bad"},
		{Date: "1980-01-01", Title: "Before"},
		{Date: "2100-01-01", Title: "Beyond"},
		{Date: "1990-07-01", Title: "Same row", Color: "sky"},
	}

	p := calendar.PlaceMarkers(birth, 10, markers)

	require.Len(t, p.RowMarkers, 1)
	assert.Equal(t, "Same row", p.RowMarkers[0].Title, "last marker on a row wins")

	assert.True(t, p.Starred(0, 0))
	assert.True(t, p.Starred(0, 2))
	assert.False(t, p.Starred(0, 1))
	assert.Equal(t, []int{0}, p.Stars[calendar.CellPos{Row: 0, Week: 0}])
	assert.Len(t, p.Stars, 2)
}

func TestMarkers_Today(t *testing.T) {
	today := lifeconfig.MustParseDate("2025-03-01")
	cfg := lifeconfig.LifeConfig{Dates: []lifeconfig.DateMarker{{Date: "2000-01-01", Title: "Y2K"}}}

	assert.Len(t, calendar.Markers(cfg, today), 1)

	cfg.ShowToday = lifeconfig.Bool(true)
	got := calendar.Markers(cfg, today)
	require.Len(t, got, 2)
	assert.Equal(t, lifeconfig.DateMarker{Date: "2025-03-01", Title: "Today"}, got[1])
	assert.Len(t, cfg.Dates, 1, "the stored list is left alone")
}

func TestLabelRows(t *testing.T) {
	periods := []lifeconfig.LifePeriod{
		{Label: "Childhood", Start: "1990-06-15", End: "1997-08-31"},
		{Label: "School", Start: "1997-09-01", End: "2008-06-30"},
		{Label: "Gap", Start: "2050-01-01", End: "2051-01-01"},
	}
	rows := calendar.BuildGridRows(birth, 20, periods)
	colors := palette.AssignColors(periods)

	labels := calendar.LabelRows(rows, colors)

	// Childhood spans rows 0..7, School rows 7..18; Gap is off the grid.
	require.Len(t, labels, 2)
	assert.Equal(t, calendar.Label{Text: "Childhood", Color: palette.Rose.Text()}, labels[3])
	assert.Equal(t, calendar.Label{Text: "School", Color: palette.Amber.Text()}, labels[12])
}

func TestLabelRows_LastWriteWins(t *testing.T) {
	// Both periods live only in row 0, so both midpoints are 0.
	periods := []lifeconfig.LifePeriod{
		{Label: "Second", Start: "1990-08-01", End: "1990-09-01"},
		{Label: "First", Start: "1990-06-15", End: "1990-07-01"},
	}
	rows := calendar.BuildGridRows(birth, 2, periods)
	labels := calendar.LabelRows(rows, palette.AssignColors(periods))

	require.Len(t, labels, 1)
	assert.Equal(t, "Second", labels[0].Text, "the later period in color order overwrites")
}

func TestLabelRows_Empty(t *testing.T) {
	assert.Empty(t, calendar.LabelRows(nil, palette.AssignColors(nil)))
}
