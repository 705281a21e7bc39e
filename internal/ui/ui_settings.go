package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	birthEntry    *widget.Entry
	yearsEntry    *NumericalEntry
	checkToday    *widget.Check
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
}

func validatePort(s string) error {
	if s == "" {
		return errors.New(config.ErrPortRequired)
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(config.ErrPortNumber)
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(config.ErrPortRange)
	}
	return nil
}

func validateYears(s string) error {
	years, err := strconv.Atoi(s)
	if err != nil || years < 0 || years > config.MaxTotalYears {
		return errors.New(config.ErrTotalYears)
	}
	return nil
}

func validateBirthdate(s string) error {
	if _, err := lifeconfig.ParseDate(s); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBirthdate, err)
	}
	return nil
}

// ShowSettingsWindow opens the settings window, or focuses it when already open.
func (app *LifeWeeksApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(config.TitleSettings)
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// refreshLayout triggers a window resize based on content visibility.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	lifeCard := widget.NewCard(config.TitleLife, "", widget.NewForm(
		widget.NewFormItem(config.LblBirthdate, sw.birthEntry),
		widget.NewFormItem(config.LblTotalYears, sw.yearsEntry),
		widget.NewFormItem("", sw.checkToday),
	))

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(config.LblMinutes), sw.entryInterval)
	generalCard := widget.NewCard(config.TitleGeneral, "", widget.NewForm(
		widget.NewFormItem(config.LblRefresh, widInterval),
		widget.NewFormItem(config.LblPort, sw.entryPort),
	))

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	saveAction := func() {
		for _, v := range []fyne.Validatable{sw.birthEntry, sw.yearsEntry, sw.entryPort} {
			if err := v.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(config.BtnSave, theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(config.BtnCancel, theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(config.MsgFooter, config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		lifeCard,
		generalCard,
		sourceCard,
		container.NewGridWithColumns(config.LayoutColumns, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the form widgets filled with the current values.
func (app *LifeWeeksApp) newSettingsWidgets() *settingsWidgets {
	cfg := app.Config()
	sw := &settingsWidgets{}

	sw.birthEntry = widget.NewEntry()
	sw.birthEntry.PlaceHolder = config.PlaceholderDate
	sw.birthEntry.SetText(cfg.Birthdate)
	sw.birthEntry.Validator = validateBirthdate

	sw.yearsEntry = NewNumericalEntry()
	sw.yearsEntry.SetText(strconv.Itoa(cfg.TotalYears))
	sw.yearsEntry.Validator = validateYears

	sw.checkToday = widget.NewCheck(config.LblShowToday, nil)
	sw.checkToday.SetChecked(cfg.TodayVisible())

	sw.modeSelect = widget.NewSelect([]string{config.ModeLabelWeb, config.ModeLabelLocal}, nil)
	if app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeLocal) == config.SourceModeWeb {
		sw.modeSelect.SetSelected(config.ModeLabelWeb)
	} else {
		sw.modeSelect.SetSelected(config.ModeLabelLocal)
	}

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = validatePort

	return sw
}

// buildSourceCard constructs the contacts source selection UI.
func (app *LifeWeeksApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(config.BtnBrowse, func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	webForm := widget.NewForm(
		widget.NewFormItem(config.LblURL, sw.urlEntry),
		widget.NewFormItem(config.LblUser, sw.userEntry),
		widget.NewFormItem(config.LblPass, sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, widget.NewLabel(config.LblPath), browseBtn, sw.pathEntry)

	updateVis := func(mode string) {
		if mode == config.ModeLabelLocal {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.modeSelect.OnChanged = updateVis
	updateVis(sw.modeSelect.Selected)

	return widget.NewCard(config.LblSource, "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists preferences, stores the password in the keyring and
// applies the life settings to the configuration. Inputs are validated by
// the caller.
func (app *LifeWeeksApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSave, config.LogKeyComponent, config.CompUISet)

	mode := config.SourceModeWeb
	if sw.modeSelect.Selected == config.ModeLabelLocal {
		mode = config.SourceModeLocal
	}
	app.Preferences.SetString(config.PrefSourceMode, mode)
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.MsgKeyringFail, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	// Empty or zero is stored as is; the worker reads it as the default.
	if v, ok := sw.entryInterval.Value(); ok && v > 0 {
		app.Preferences.SetInt(config.PrefInterval, v)
	} else {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
		slog.Info(config.MsgRefreshOff, config.LogKeyComponent, config.CompUISet)
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	cfg := app.Config()
	cfg.Birthdate = sw.birthEntry.Text
	if years, ok := sw.yearsEntry.Value(); ok {
		cfg.TotalYears = years
	}
	cfg.ShowToday = lifeconfig.Bool(sw.checkToday.Checked)
	app.SetConfig(cfg)
}
