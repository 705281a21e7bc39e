package palette

import (
	"sort"

	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
)

// Assignment maps a period, identified by its index in the slice given to
// AssignColors, to its token. It remembers the order in which periods were
// assigned, which is chronological by start date.
type Assignment struct {
	order  []int
	tokens map[int]Token
}

// Token returns the token of period i, or Neutral if i was never assigned.
func (a Assignment) Token(i int) Token {
	if t, ok := a.tokens[i]; ok {
		return t
	}
	return Neutral
}

// Has reports whether period i received a token.
func (a Assignment) Has(i int) bool {
	_, ok := a.tokens[i]
	return ok
}

// Order returns period indices in assignment order.
func (a Assignment) Order() []int {
	out := make([]int, len(a.order))
	copy(out, a.order)
	return out
}

func (a Assignment) Len() int { return len(a.order) }

// AssignColors gives every period a token. Periods are walked by start date;
// a manual color is used as is, otherwise the next palette token is taken,
// skipping one slot when it would repeat the previous period's color.
// Colors repeat once there are more periods than palette entries.
func AssignColors(periods []lifeconfig.LifePeriod) Assignment {
	a := Assignment{
		order:  make([]int, 0, len(periods)),
		tokens: make(map[int]Token, len(periods)),
	}

	var lastColor Token
	colorIndex := 0
	for _, i := range chronological(periods) {
		if c := periods[i].Color; c != "" {
			a.set(i, Token(c))
			// Compare by display token so "bg-rose-400" also blocks "rose".
			lastColor = Token(c)
			if t, ok := Lookup(c); ok {
				lastColor = t
			}
			continue
		}
		color := At(colorIndex)
		if color == lastColor {
			colorIndex++
			color = At(colorIndex)
		}
		a.set(i, color)
		lastColor = color
		colorIndex++
	}
	return a
}

func (a *Assignment) set(i int, t Token) {
	a.order = append(a.order, i)
	a.tokens[i] = t
}

// chronological returns period indices stably sorted by start date.
// Periods with an unparsable start keep their relative order after the rest.
func chronological(periods []lifeconfig.LifePeriod) []int {
	type key struct {
		start lifeconfig.Date
		ok    bool
	}
	keys := make([]key, len(periods))
	idx := make([]int, len(periods))
	for i, p := range periods {
		d, err := lifeconfig.ParseDate(p.Start)
		keys[i] = key{start: d, ok: err == nil}
		idx[i] = i
	}

	sort.SliceStable(idx, func(x, y int) bool {
		a, b := keys[idx[x]], keys[idx[y]]
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.start.Before(b.start)
	})
	return idx
}
