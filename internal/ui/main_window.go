package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// buildMainWindow assembles the calendar window: toolbar, header, grid and
// legend.
func (app *LifeWeeksApp) buildMainWindow() fyne.Window {
	w := app.App.NewWindow(config.TitleMain)
	app.Window = w
	app.view = newCalendarView()

	toolbar := container.NewHBox(
		widget.NewButtonWithIcon(config.ActionImport, theme.FolderOpenIcon(), app.showImportDialog),
		widget.NewButtonWithIcon(config.ActionExport, theme.DocumentSaveIcon(), app.showExportDialog),
		widget.NewButtonWithIcon(config.ActionShare, theme.MailForwardIcon(), app.ShowShareDialog),
		widget.NewButtonWithIcon(config.ActionOpenLink, theme.ContentPasteIcon(), app.showOpenLinkDialog),
		widget.NewButtonWithIcon(config.ActionContacts, theme.AccountIcon(), app.importContacts),
		widget.NewButtonWithIcon(config.ActionReset, theme.ViewRefreshIcon(), app.confirmReset),
		widget.NewButtonWithIcon(config.ActionSettings, theme.SettingsIcon(), app.ShowSettingsWindow),
	)

	app.view.status.Hide()

	content := container.NewBorder(
		container.NewVBox(toolbar, app.view.status),
		app.view.legend,
		nil, nil,
		container.NewScroll(container.NewCenter(app.view.grid)),
	)

	app.refreshView()

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()
	return w
}

func (app *LifeWeeksApp) showImportDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer r.Close()

		if err := app.importConfig(r, r.URI().Name()); err != nil {
			slog.Warn(config.ErrInvalidConfig,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, r.URI().Name(),
				config.LogKeyError, err)
			dialog.ShowError(fmt.Errorf("%s: %w", config.TitleImportError, err), app.Window)
		}
	}, app.Window)
	d.SetFilter(fynestorage.NewExtensionFileFilter([]string{config.ExtJSON, config.ExtYAML, config.ExtYML}))
	d.Show()
}

func (app *LifeWeeksApp) showExportDialog() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()

		if err := app.exportConfig(wc, wc.URI().Name()); err != nil {
			dialog.ShowError(err, app.Window)
		}
	}, app.Window)
	d.SetFileName(config.ExportFileName)
	d.Show()
}

// ShowShareDialog shows the share link of the current configuration with a
// button copying it to the clipboard.
func (app *LifeWeeksApp) ShowShareDialog() {
	if app.Window == nil {
		return
	}

	link, err := app.shareLink()
	if err != nil {
		dialog.ShowError(err, app.Window)
		return
	}

	entry := widget.NewEntry()
	entry.SetText(link)
	entry.Wrapping = fyne.TextWrapBreak

	copyBtn := widget.NewButtonWithIcon(config.ActionShare, theme.ContentCopyIcon(), func() {
		app.App.Clipboard().SetContent(link)
		dialog.ShowInformation(config.TitleShare, config.MsgCopied, app.Window)
	})
	copyBtn.Importance = widget.HighImportance

	d := dialog.NewCustom(config.TitleShare, config.BtnCancel, container.NewVBox(entry, copyBtn), app.Window)
	d.Resize(fyne.NewSize(config.ShareDialogWide, d.MinSize().Height))
	d.Show()
}

func (app *LifeWeeksApp) showOpenLinkDialog() {
	entry := widget.NewEntry()
	entry.PlaceHolder = config.PlaceholderToken

	items := []*widget.FormItem{widget.NewFormItem(config.LblLink, entry)}
	d := dialog.NewForm(config.TitleOpenLink, config.ActionOpenLink, config.BtnCancel, items, func(ok bool) {
		if !ok {
			return
		}
		if err := app.openLink(entry.Text); err != nil {
			dialog.ShowError(err, app.Window)
		}
	}, app.Window)
	d.Resize(fyne.NewSize(config.ShareDialogWide, d.MinSize().Height))
	d.Show()
}

func (app *LifeWeeksApp) confirmReset() {
	dialog.ShowConfirm(config.TitleResetConfirm, config.MsgResetConfirm, func(ok bool) {
		if ok {
			app.resetConfig()
		}
	}, app.Window)
}

// importContacts loads the address book off the UI thread, then opens the
// contacts window.
func (app *LifeWeeksApp) importContacts() {
	go func() {
		_, err := app.loadContacts()
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, app.Window)
				return
			}
			app.ShowContactsWindow()
		})
	}()
}
