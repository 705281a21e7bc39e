package palette_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/tartampluch/go-lifeweeks/internal/palette"
)

var threePeriods = []lifeconfig.LifePeriod{
	{Label: "Childhood", Start: "1990-06-15", End: "1997-08-31"},
	{Label: "School", Start: "1997-09-01", End: "2008-06-30"},
	{Label: "University", Start: "2008-09-01", End: "2013-06-30"},
}

func TestAssignColors_EveryPeriodFromPalette(t *testing.T) {
	a := palette.AssignColors(threePeriods)

	require.Equal(t, len(threePeriods), a.Len())
	for i := range threePeriods {
		assert.True(t, a.Has(i))
		assert.Contains(t, palette.Palette(), a.Token(i))
	}
	assert.Equal(t, []palette.Token{palette.Rose, palette.Amber, palette.Emerald},
		[]palette.Token{a.Token(0), a.Token(1), a.Token(2)})
}

func TestAssignColors_SortsByStart(t *testing.T) {
	// Listed out of order: assignment follows the calendar, not the list.
	periods := []lifeconfig.LifePeriod{threePeriods[2], threePeriods[0], threePeriods[1]}
	a := palette.AssignColors(periods)

	assert.Equal(t, palette.Emerald, a.Token(0))
	assert.Equal(t, palette.Rose, a.Token(1))
	assert.Equal(t, palette.Amber, a.Token(2))
	assert.Equal(t, []int{1, 2, 0}, a.Order())
}

func TestAssignColors_ManualColor(t *testing.T) {
	periods := []lifeconfig.LifePeriod{
		{Label: "A", Start: "2000-01-01", End: "2005-12-31", Color: "pink"},
		{Label: "B", Start: "2006-01-01", End: "2010-12-31"},
	}
	a := palette.AssignColors(periods)

	assert.Equal(t, palette.Pink, a.Token(0))
	assert.Equal(t, palette.Rose, a.Token(1), "manual colors do not consume palette slots")
}

func TestAssignColors_AvoidsManualNeighbour(t *testing.T) {
	periods := []lifeconfig.LifePeriod{
		{Label: "A", Start: "2000-01-01", End: "2005-12-31", Color: string(palette.At(0))},
		{Label: "B", Start: "2006-01-01", End: "2010-12-31"},
	}
	a := palette.AssignColors(periods)
	assert.NotEqual(t, a.Token(0), a.Token(1))
	assert.Equal(t, palette.Amber, a.Token(1))
}

func TestAssignColors_AvoidsLegacyManualNeighbour(t *testing.T) {
	periods := []lifeconfig.LifePeriod{
		{Label: "A", Start: "2000-01-01", End: "2000-12-31", Color: "bg-rose-400"},
		{Label: "B", Start: "2001-01-01", End: "2001-12-31"},
	}
	a := palette.AssignColors(periods)

	assert.Equal(t, palette.Token("bg-rose-400"), a.Token(0), "stored values are kept as is")
	first, ok := palette.Lookup(string(a.Token(0)))
	require.True(t, ok)
	assert.Equal(t, palette.Rose, first)
	assert.Equal(t, palette.Amber, a.Token(1))
}

func TestAssignColors_UnknownManualColorDoesNotBlock(t *testing.T) {
	periods := []lifeconfig.LifePeriod{
		{Label: "A", Start: "2000-01-01", End: "2000-12-31", Color: "chartreuse"},
		{Label: "B", Start: "2001-01-01", End: "2001-12-31"},
	}
	assert.Equal(t, palette.Rose, palette.AssignColors(periods).Token(1))
}

func TestAssignColors_NoAdjacentRepeats(t *testing.T) {
	// Mix manual colors chosen to collide with the next auto candidate.
	var periods []lifeconfig.LifePeriod
	for i := 0; i < 25; i++ {
		p := lifeconfig.LifePeriod{
			Label: fmt.Sprintf("P%d", i),
			Start: fmt.Sprintf("%04d-01-01", 2000+i),
			End:   fmt.Sprintf("%04d-12-31", 2000+i),
		}
		if i%4 == 1 {
			p.Color = string(palette.At(i))
		}
		periods = append(periods, p)
	}

	a := palette.AssignColors(periods)
	for i := 1; i < len(periods); i++ {
		assert.NotEqual(t, a.Token(i-1), a.Token(i), "periods %d and %d share a color", i-1, i)
	}
}

func TestAssignColors_WrapsAfterTen(t *testing.T) {
	var periods []lifeconfig.LifePeriod
	for i := 0; i < 12; i++ {
		periods = append(periods, lifeconfig.LifePeriod{
			Label: "same label",
			Start: fmt.Sprintf("%04d-01-01", 2000+i),
			End:   fmt.Sprintf("%04d-12-31", 2000+i),
		})
	}
	a := palette.AssignColors(periods)

	assert.Equal(t, 12, a.Len(), "duplicate labels are distinct periods")
	assert.Equal(t, palette.Rose, a.Token(10))
	assert.Equal(t, palette.Amber, a.Token(11))
}

func TestAssignColors_UnparsableStartGoesLast(t *testing.T) {
	periods := []lifeconfig.LifePeriod{
		{Label: "Broken", Start: "someday", End: "later"},
		{Label: "Real", Start: "2000-01-01", End: "2001-01-01"},
	}
	a := palette.AssignColors(periods)
	assert.Equal(t, []int{1, 0}, a.Order())
}

func TestAssignment_UnknownIndex(t *testing.T) {
	a := palette.AssignColors(nil)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, palette.Neutral, a.Token(3))
}

func TestVariants(t *testing.T) {
	assert.Equal(t, palette.TextToken("text-rose"), palette.Rose.Text())
	assert.Equal(t, palette.BorderToken("border-sky"), palette.Sky.Border())
	assert.Equal(t, palette.TextToken("text-gray"), palette.Neutral.Text())

	// Legacy class names resolve to the same variants.
	assert.Equal(t, palette.TextToken("text-violet"), palette.Token("bg-violet-400").Text())
	assert.Equal(t, palette.BorderToken("border-gray"), palette.Token("chartreuse").Border())

	tok, ok := palette.Lookup("bg-indigo-400")
	assert.True(t, ok)
	assert.Equal(t, palette.Indigo, tok)

	_, ok = palette.Lookup("chartreuse")
	assert.False(t, ok)
}

func TestPalette_FixedOrder(t *testing.T) {
	p := palette.Palette()
	require.Len(t, p, 10)
	assert.Equal(t, palette.Rose, p[0])
	assert.Equal(t, palette.Indigo, p[9])
	assert.Equal(t, palette.Rose, palette.At(10))
	assert.Equal(t, palette.Indigo, palette.At(-1))

	p[0] = palette.Neutral
	assert.Equal(t, palette.Rose, palette.Palette()[0], "Palette returns a copy")
}
