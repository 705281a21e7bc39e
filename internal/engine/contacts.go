package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
)

// ContactSource tells where to read vCards from.
type ContactSource struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth username
	WebPass   string // HTTP Basic Auth password
}

// Contact is a person with a birthday found in a vCard stream.
type Contact struct {
	// UID is derived from name and birthday, stable across imports.
	UID string

	Name     string
	Birthday time.Time

	// YearKnown is false for truncated dates such as --06-15. Birthday then
	// carries DefaultLeapYear.
	YearKnown bool
}

// Marker returns the date marker for the contact's birth. Contacts without
// a birth year cannot be placed on the grid.
func (c Contact) Marker() (lifeconfig.DateMarker, bool) {
	if !c.YearKnown {
		return lifeconfig.DateMarker{}, false
	}
	return lifeconfig.DateMarker{
		Date:  lifeconfig.DateOf(c.Birthday).String(),
		Title: c.Name,
	}, true
}

// ContactLoader reads contacts from a local file or a remote address book.
type ContactLoader struct {
	Fetcher VCardFetcher
}

// NewContactLoader returns a loader using the default HTTP fetcher.
func NewContactLoader() *ContactLoader {
	return &ContactLoader{Fetcher: NewHTTPFetcher()}
}

// Load returns every contact with a parsable birthday, sorted by birthday.
// Malformed cards are logged and skipped.
func (l *ContactLoader) Load(ctx context.Context, src ContactSource) ([]Contact, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, src.Mode,
	)

	// 1. Acquire Data Stream
	reader, err := l.acquireStream(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	// Best effort close. Errors closing a read-only stream are not actionable.
	defer func() { _ = reader.Close() }()

	// 2. Decode Cards
	contacts, processed, err := decodeContacts(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgContactsLoaded,
		config.LogKeyCards, processed,
		config.LogKeyCount, len(contacts))
	return contacts, nil
}

// acquireStream opens the configured source.
func (l *ContactLoader) acquireStream(ctx context.Context, src ContactSource) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.LocalPath)
	case config.SourceModeWeb:
		if src.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return l.Fetcher.Fetch(ctx, src.WebURL, src.WebUser, src.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

// decodeContacts reads every card and keeps those carrying a BDAY. It also
// returns how many cards were decoded at all.
func decodeContacts(ctx context.Context, r io.Reader) ([]Contact, int, error) {
	decoder := vcard.NewDecoder(r)
	var contacts []Contact
	processed := 0

	for {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep going: one broken card should not hide the rest.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}
		processed++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		birthday, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		// FN (formatted) > N (structured) > fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		// Deterministic UID
		input := fmt.Sprintf(config.FormatContactInput, name, birthday.Format(time.RFC3339))
		contacts = append(contacts, Contact{
			UID:       uuid.NewSHA1(uidSpace, []byte(input)).String(),
			Name:      name,
			Birthday:  birthday,
			YearKnown: yearKnown,
		})
	}

	// Oldest first, file order on ties.
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Birthday.Before(contacts[j].Birthday)
	})
	return contacts, processed, nil
}

// MergeMarkers appends the birth markers of contacts to existing, skipping
// contacts without a year and markers already present with the same date
// and title. It returns the new list and the number of markers added.
func MergeMarkers(existing []lifeconfig.DateMarker, contacts []Contact) ([]lifeconfig.DateMarker, int) {
	seen := make(map[lifeconfig.DateMarker]bool, len(existing))
	out := make([]lifeconfig.DateMarker, 0, len(existing)+len(contacts))
	for _, m := range existing {
		seen[lifeconfig.DateMarker{Date: m.Date, Title: m.Title}] = true
		out = append(out, m)
	}

	// Existing markers win; only new (date, title) pairs are appended.
	added := 0
	for _, c := range contacts {
		m, ok := c.Marker()
		if !ok || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
		added++
	}
	return out, added
}

// parseDate handles the vCard BDAY formats.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates; the leap year keeps --02-29 valid.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
