package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
)

// MockFetcher simulates the network layer.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

const addressBook = `BEGIN:VCARD
VERSION:3.0
FN:Zoe Late
BDAY:1995-12-31
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Ada Early
BDAY:19801025
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Nameless;Structured;;;
BDAY:--02-29
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:No Birthday
END:VCARD
`

func webLoader(t *testing.T, body string) (*engine.ContactLoader, *MockFetcher) {
	t.Helper()
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/book", "me", "secret").
		Return(io.NopCloser(strings.NewReader(body)), nil)
	return &engine.ContactLoader{Fetcher: fetcher}, fetcher
}

var webSource = engine.ContactSource{
	Mode:    config.SourceModeWeb,
	WebURL:  "https://dav.example.com/book",
	WebUser: "me",
	WebPass: "secret",
}

func TestLoad_Web(t *testing.T) {
	loader, fetcher := webLoader(t, addressBook)

	contacts, err := loader.Load(context.Background(), webSource)
	require.NoError(t, err)
	fetcher.AssertExpectations(t)

	require.Len(t, contacts, 3, "cards without BDAY are skipped")

	// Sorted by birthday; the truncated date carries the fallback leap year.
	assert.Equal(t, "Ada Early", contacts[0].Name)
	assert.True(t, contacts[0].YearKnown)
	assert.Equal(t, "Zoe Late", contacts[1].Name)
	assert.Equal(t, "Nameless;Structured;;;", contacts[2].Name)
	assert.False(t, contacts[2].YearKnown)
	assert.Equal(t, time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), contacts[2].Birthday)

	for _, c := range contacts {
		assert.NotEmpty(t, c.UID)
	}
}

func TestLoad_Local(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.vcf")
	require.NoError(t, os.WriteFile(path, []byte(addressBook), config.FilePermUserRW))

	loader := &engine.ContactLoader{}
	contacts, err := loader.Load(context.Background(), engine.ContactSource{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})
	require.NoError(t, err)
	assert.Len(t, contacts, 3)
}

func TestLoad_StableUIDs(t *testing.T) {
	first, _ := webLoader(t, addressBook)
	second, _ := webLoader(t, addressBook)

	a, err := first.Load(context.Background(), webSource)
	require.NoError(t, err)
	b, err := second.Load(context.Background(), webSource)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].UID, b[i].UID)
	}
	assert.NotEqual(t, a[0].UID, a[1].UID)
}

func TestLoad_SourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		loader  *engine.ContactLoader
		src     engine.ContactSource
		wantMsg string
	}{
		{"Empty path", &engine.ContactLoader{}, engine.ContactSource{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"Empty URL", &engine.ContactLoader{}, engine.ContactSource{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"No fetcher", &engine.ContactLoader{}, engine.ContactSource{Mode: config.SourceModeWeb, WebURL: "http://x"}, config.ErrFetcherMissing},
		{"Unknown mode", &engine.ContactLoader{}, engine.ContactSource{Mode: "carrier-pigeon"}, config.ErrModeUnsupport},
		{"Missing file", &engine.ContactLoader{}, engine.ContactSource{Mode: config.SourceModeLocal, LocalPath: "/does/not/exist.vcf"}, config.ErrVCardParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, err := tt.loader.Load(context.Background(), tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Nil(t, contacts)
		})
	}
}

func TestLoad_NetworkError(t *testing.T) {
	expectedErr := errors.New("network unreachable")
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, expectedErr)

	loader := &engine.ContactLoader{Fetcher: fetcher}
	_, err := loader.Load(context.Background(), engine.ContactSource{Mode: config.SourceModeWeb, WebURL: "http://bad"})

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
}

func TestLoad_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader, _ := webLoader(t, addressBook)
	_, err := loader.Load(ctx, webSource)
	assert.Equal(t, context.Canceled, err)
}

func TestLoad_SkipsMalformedCards(t *testing.T) {
	body := "garbage line\n" + addressBook
	loader, _ := webLoader(t, body)

	contacts, err := loader.Load(context.Background(), webSource)
	require.NoError(t, err)
	assert.Len(t, contacts, 3)
}

func TestContactMarker(t *testing.T) {
	c := engine.Contact{Name: "Ada", Birthday: time.Date(1980, 10, 25, 0, 0, 0, 0, time.UTC), YearKnown: true}
	m, ok := c.Marker()
	require.True(t, ok)
	assert.Equal(t, lifeconfig.DateMarker{Date: "1980-10-25", Title: "Ada"}, m)

	c.YearKnown = false
	_, ok = c.Marker()
	assert.False(t, ok)
}

func TestMergeMarkers(t *testing.T) {
	existing := []lifeconfig.DateMarker{
		{Date: "1980-10-25", Title: "Ada", Color: "rose"},
		{Date: "2000-01-01", Title: "Y2K"},
	}
	contacts := []engine.Contact{
		{Name: "Ada", Birthday: time.Date(1980, 10, 25, 0, 0, 0, 0, time.UTC), YearKnown: true},
		{Name: "Bob", Birthday: time.Date(1985, 3, 3, 0, 0, 0, 0, time.UTC), YearKnown: true},
		{Name: "Bob", Birthday: time.Date(1985, 3, 3, 0, 0, 0, 0, time.UTC), YearKnown: true},
		{Name: "Leap", Birthday: time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), YearKnown: false},
	}

	merged, added := engine.MergeMarkers(existing, contacts)
	assert.Equal(t, 1, added)
	require.Len(t, merged, 3)
	assert.Equal(t, existing[0], merged[0], "existing markers keep their color")
	assert.Equal(t, lifeconfig.DateMarker{Date: "1985-03-03", Title: "Bob"}, merged[2])
	assert.Len(t, existing, 2, "input is not modified")
}
