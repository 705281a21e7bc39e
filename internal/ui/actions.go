package ui

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/tartampluch/go-lifeweeks/internal/sharing"
	"github.com/tartampluch/go-lifeweeks/internal/storage"
)

var (
	errLinkInvalid  = errors.New(config.MsgLinkInvalid)
	errContactsNone = errors.New(config.MsgContactsNone)
)

// importConfig replaces the configuration with the file read from r. The
// current configuration is kept when the file is rejected.
func (app *LifeWeeksApp) importConfig(r io.Reader, name string) error {
	cfg, err := storage.Import(r, name)
	if err != nil {
		return err
	}
	app.SetConfig(cfg)
	return nil
}

// exportConfig writes the current configuration to w.
func (app *LifeWeeksApp) exportConfig(w io.Writer, name string) error {
	return storage.Export(w, app.Config(), name)
}

// shareLink builds the share URL of the current configuration.
func (app *LifeWeeksApp) shareLink() (string, error) {
	token, err := sharing.EncodeConfig(app.Config())
	if err != nil {
		return "", err
	}
	return sharing.ShareURL(config.ShareBaseURL, token)
}

// openLink loads the configuration carried by a share link or bare token.
func (app *LifeWeeksApp) openLink(raw string) error {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	token, ok := sharing.TokenFromURL(raw)
	if !ok {
		log.Warn(config.MsgLinkRejected)
		return errLinkInvalid
	}
	cfg, ok := sharing.DecodeConfig(token)
	if !ok {
		log.Warn(config.MsgLinkRejected, config.LogKeyLength, len(token))
		return errLinkInvalid
	}

	log.Info(config.MsgLinkOpened,
		config.LogKeyPeriods, len(cfg.Periods),
		config.LogKeyMarkers, len(cfg.Dates))
	app.SetConfig(cfg)
	return nil
}

// resetConfig restores the sample configuration.
func (app *LifeWeeksApp) resetConfig() {
	app.SetConfig(lifeconfig.Default())
}

// loadContacts reads the configured address book and keeps the result for
// the contacts window.
func (app *LifeWeeksApp) loadContacts() ([]engine.Contact, error) {
	contacts, err := app.Loader.Load(app.Ctx, app.contactSource())
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, errContactsNone
	}

	app.ContactsMut.Lock()
	app.Contacts = contacts
	app.ContactsMut.Unlock()
	return contacts, nil
}

// addContactMarkers appends a birth marker for every loaded contact not yet
// on the calendar and returns how many were added.
func (app *LifeWeeksApp) addContactMarkers() int {
	app.ContactsMut.RLock()
	contacts := make([]engine.Contact, len(app.Contacts))
	copy(contacts, app.Contacts)
	app.ContactsMut.RUnlock()

	cfg := app.Config()
	dates, added := engine.MergeMarkers(cfg.Dates, contacts)
	if added > 0 {
		cfg.Dates = dates
		app.SetConfig(cfg)
	}
	return added
}
