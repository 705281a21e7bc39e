// Package engine renders a life configuration as an iCalendar feed and
// imports contact birthdays as date markers.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-lifeweeks/internal/calendar"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/tartampluch/go-lifeweeks/internal/palette"
)

// uidSpace scopes every UID generated by this package.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// Stats summarizes one generation run.
type Stats struct {
	Periods int
	Markers int
	Skipped int
}

// Events is the total number of VEVENTs written.
func (s Stats) Events() int {
	return s.Periods + s.Markers
}

// Generator turns a LifeConfig into an iCalendar document.
type Generator struct {
	Clock Clock
}

// NewGenerator returns a Generator reading the system clock.
func NewGenerator() *Generator {
	return &Generator{Clock: RealClock{}}
}

// Generate renders cfg. Every period becomes an all-day event spanning its
// inclusive range, every marker a single-day event, and the today marker is
// added when cfg asks for it. Entries with unparsable dates are skipped.
func (g *Generator) Generate(ctx context.Context, cfg lifeconfig.LifeConfig) ([]byte, Stats, error) {
	start := time.Now()
	var stats Stats

	// 1. Calendar headers
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// "Today" is the local calendar day of the user, stamped in UTC.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	// 2. Periods
	// Colors are assigned once so the feed matches the grid.
	colors := palette.AssignColors(cfg.Periods)
	for i, p := range cfg.Periods {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, err
		}
		first, errStart := lifeconfig.ParseDate(p.Start)
		last, errEnd := lifeconfig.ParseDate(p.End)
		// Skip rather than fail: one bad entry must not empty the feed.
		if errStart != nil || errEnd != nil || last.Before(first) {
			stats.Skipped++
			logSkipped(config.EventKindPeriod, i)
			continue
		}
		e := newEvent(config.EventKindPeriod, i, p.Label, first, last)
		e.Props.SetText(config.PropCategories, string(colors.Token(i)))
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
		stats.Periods++
	}

	// 3. Markers, birth first and today last when visible.
	markers := calendar.Markers(cfg, lifeconfig.DateOf(now))
	for i, m := range markers {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, err
		}
		d, err := lifeconfig.ParseDate(m.Date)
		if err != nil {
			stats.Skipped++
			logSkipped(config.EventKindMarker, i)
			continue
		}
		kind := config.EventKindMarker
		if cfg.TodayVisible() && i == len(markers)-1 {
			kind = config.EventKindToday
		}
		e := newEvent(kind, i, m.Title, d, d)
		if tok, ok := palette.Lookup(m.Color); ok {
			e.Props.SetText(config.PropCategories, string(tok))
		}
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
		stats.Markers++
	}

	// 4. Encoding
	// An empty life still serves a valid VCALENDAR so clients do not flag
	// the feed as invalid.
	var buf bytes.Buffer
	if len(cal.Children) == 0 {
		buf.WriteString(config.StubVCalendar)
		g.logSuccess(stats, start)
		return buf.Bytes(), stats, nil
	}

	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, Stats{}, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats, start)
	return buf.Bytes(), stats, nil
}

// newEvent builds an all-day event covering first..last inclusive. DTEND is
// exclusive in iCalendar, hence the extra day.
func newEvent(kind string, index int, title string, first, last lifeconfig.Date) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(kind, index, title, first))
	event.Props.SetText(config.PropSummary, title)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(first.Time())
	event.Props.Set(dtStartProp)

	dtEndProp := ical.NewProp(config.PropDTEnd)
	dtEndProp.SetDate(last.AddDays(1).Time())
	event.Props.Set(dtEndProp)

	return event
}

// eventUID is stable across regenerations as long as the entry keeps its
// position, title and start date.
func eventUID(kind string, index int, title string, first lifeconfig.Date) string {
	input := fmt.Sprintf(config.FormatUIDInput, kind, index, title, first)
	return fmt.Sprintf(config.FormatUID, uuid.NewSHA1(uidSpace, []byte(input)), config.ICalDomain)
}

// logSkipped records an entry dropped for an unparsable or inverted date.
func logSkipped(kind string, index int) {
	slog.Debug(config.MsgSkippedEvent,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyKind, kind,
		config.LogKeyIndex, index)
}

func (g *Generator) logSuccess(stats Stats, start time.Time) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyPeriods, stats.Periods),
			slog.Int(config.LogKeyMarkers, stats.Markers),
			slog.Int(config.LogKeySkipped, stats.Skipped),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}
