package calendar

import "github.com/tartampluch/go-lifeweeks/internal/palette"

// Label is a period name drawn beside the grid.
type Label struct {
	Text  string
	Color palette.TextToken
}

// LabelRows places the label of every period that appears in rows on the
// middle row of its extent. Periods are visited in the assignment order of
// colors; when two midpoints fall on the same row the later one wins.
func LabelRows(rows []Row, colors palette.Assignment) map[int]Label {
	type extent struct {
		first, last int
		label       string
	}
	extents := make(map[int]*extent)
	for r, row := range rows {
		for _, c := range row.Cells {
			if c.Period == nil {
				continue
			}
			if e, ok := extents[c.PeriodIndex]; ok {
				e.last = r
				continue
			}
			extents[c.PeriodIndex] = &extent{first: r, last: r, label: c.Period.Label}
		}
	}

	labels := make(map[int]Label)
	for _, i := range colors.Order() {
		e, ok := extents[i]
		if !ok {
			continue
		}
		mid := (e.first + e.last) / 2
		labels[mid] = Label{Text: e.label, Color: colors.Token(i).Text()}
	}
	return labels
}
