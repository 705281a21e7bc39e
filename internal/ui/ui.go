// Package ui is the fyne desktop viewer: the week grid, its legend and
// toolbar, the settings and contacts windows, and the background worker that
// keeps the published feed current.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/tartampluch/go-lifeweeks/internal/server"
	"github.com/tartampluch/go-lifeweeks/internal/storage"
	"github.com/zalando/go-keyring"
)

// Worker signals.
const (
	signalInterval = "interval"
	signalConfig   = "config"
)

// LifeWeeksApp holds the UI state, the current configuration and the
// background services.
type LifeWeeksApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Ctx         context.Context

	Server *server.FeedServer
	Loader *engine.ContactLoader
	Clock  engine.Clock

	Tray desktop.App
	Menu *fyne.Menu

	configMut sync.RWMutex
	cfg       lifeconfig.LifeConfig

	// Contacts found by the last import, shown in the contacts window.
	ContactsMut sync.RWMutex
	Contacts    []engine.Contact

	settingsWindow fyne.Window
	contactsWindow fyne.Window
	view           *calendarView
	configChan     chan string
}

// NewLifeWeeksApp wires the application. fetcher is used for remote
// address books.
func NewLifeWeeksApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher engine.VCardFetcher) *LifeWeeksApp {
	return &LifeWeeksApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Server:      srv,
		Loader:      &engine.ContactLoader{Fetcher: fetcher},
		Clock:       engine.RealClock{},
		configChan:  make(chan string, config.ChannelBufferSize),
	}
}

// Run loads the stored configuration, starts the feed server and the
// worker, and blocks in the fyne event loop.
func (app *LifeWeeksApp) Run() {
	app.loadConfig()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.Window = app.buildMainWindow()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.setupTrayMenu()
	} else {
		slog.Warn(config.MsgTrayMissing, config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.Window.ShowAndRun()
}

// Config returns a copy of the current configuration.
func (app *LifeWeeksApp) Config() lifeconfig.LifeConfig {
	app.configMut.RLock()
	defer app.configMut.RUnlock()
	return app.cfg.Canonical()
}

// SetConfig replaces the current configuration, persists it, redraws the
// grid and asks the worker to republish the feed.
func (app *LifeWeeksApp) SetConfig(cfg lifeconfig.LifeConfig) {
	cfg = cfg.Canonical()

	app.configMut.Lock()
	app.cfg = cfg
	app.configMut.Unlock()

	if err := storage.Save(app.Preferences, cfg); err != nil {
		slog.Error(config.ErrConfigEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}

	app.refreshView()
	app.signal(signalConfig)
}

// loadConfig reads the stored configuration, falling back to the sample.
func (app *LifeWeeksApp) loadConfig() {
	cfg, ok := storage.Load(app.Preferences)
	if !ok {
		cfg = lifeconfig.Default()
	}

	app.configMut.Lock()
	app.cfg = cfg.Canonical()
	app.configMut.Unlock()
}

func (app *LifeWeeksApp) signal(key string) {
	select {
	case app.configChan <- key:
	default:
	}
}

// watchPreferences wakes the worker when settings change.
func (app *LifeWeeksApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		app.signal(signalInterval)
	})
}

func (app *LifeWeeksApp) today() lifeconfig.Date {
	return lifeconfig.DateOf(app.Clock.Now())
}

// setupTrayMenu constructs the system tray menu.
func (app *LifeWeeksApp) setupTrayMenu() {
	app.Menu = fyne.NewMenu(config.AppName,
		fyne.NewMenuItem(config.TrayShow, func() {
			if app.Window != nil {
				app.Window.Show()
				app.Window.RequestFocus()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(config.ActionShare, app.ShowShareDialog),
		fyne.NewMenuItem(config.ActionSettings, app.ShowSettingsWindow),
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// refreshInterval reads the refresh interval; zero or negative means the
// default, so the today marker still advances.
func (app *LifeWeeksApp) refreshInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val <= 0 {
		val = config.DefaultRefreshMin
	}
	return time.Duration(val) * time.Minute
}

// backgroundWorker republishes the feed on every tick and whenever the
// configuration changes.
func (app *LifeWeeksApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.publishFeed()

	currentDuration := app.refreshInterval()
	ticker := time.NewTicker(currentDuration)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			if newDuration := app.refreshInterval(); newDuration != currentDuration {
				log.Info(config.MsgUpdateInterval, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(currentDuration)
			}
			// Signals coalesce in a one-slot channel, so any of them republishes.
			app.publishFeed()

		case <-ticker.C:
			app.publishFeed()
			fyne.Do(app.refreshView)
		}
	}
}

// publishFeed regenerates the iCalendar feed and the JSON document served
// by the local server.
func (app *LifeWeeksApp) publishFeed() {
	slog.Debug(config.MsgFeedRequested, config.LogKeyComponent, config.CompWorker)

	cfg := app.Config()
	gen := &engine.Generator{Clock: app.Clock}

	ics, _, err := gen.Generate(app.Ctx, cfg)
	if err != nil {
		slog.Error(config.MsgFeedFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err)
		return
	}
	doc, err := storage.Marshal(cfg, storage.FormatJSON)
	if err != nil {
		slog.Error(config.MsgFeedFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err)
		return
	}

	app.Server.Publish(ics, doc)
}

// contactSource assembles the contact source from preferences and keyring.
func (app *LifeWeeksApp) contactSource() engine.ContactSource {
	src := engine.ContactSource{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeLocal),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if src.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, src.WebUser); err == nil {
			src.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, src.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return src
}
