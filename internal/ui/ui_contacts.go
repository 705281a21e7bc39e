package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

const (
	contactColumns    = 2
	headerPlaceholder = "Header"
)

// birthdayText formats a contact birthday, leaving the year out when unknown.
func birthdayText(c engine.Contact) string {
	if !c.YearKnown {
		return c.Birthday.Format(config.DateFormatNoYearD)
	}
	return c.Birthday.Format(config.DateLayout)
}

// sortContacts orders contacts by the given column. Contacts without a birth
// year sort after the others by date.
func sortContacts(contacts []engine.Contact, col int, asc bool) {
	sort.SliceStable(contacts, func(i, j int) bool {
		a, b := contacts[i], contacts[j]
		var less bool
		switch col {
		case config.ColIDName:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default:
			switch {
			case a.YearKnown != b.YearKnown:
				less = a.YearKnown
			case a.Birthday.Equal(b.Birthday):
				less = a.Name < b.Name
			default:
				less = a.Birthday.Before(b.Birthday)
			}
		}
		if !asc {
			return !less
		}
		return less
	})
}

// ShowContactsWindow lists the contacts found by the last import. The
// headers sort the table; the button adds their birth dates as markers.
func (app *LifeWeeksApp) ShowContactsWindow() {
	if app.contactsWindow != nil {
		app.contactsWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(config.TitleContacts)
	app.contactsWindow = w
	w.Resize(fyne.NewSize(config.ContactsWinWidth, config.ContactsWinHeight))

	// Local copy so sorting never races with a new import.
	app.ContactsMut.RLock()
	displayContacts := make([]engine.Contact, len(app.Contacts))
	copy(displayContacts, app.Contacts)
	app.ContactsMut.RUnlock()

	slog.Info(config.MsgContactsOpen,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(displayContacts))

	currentSortCol := config.ColIDDate
	sortAsc := true

	performSort := func() {
		sortContacts(displayContacts, currentSortCol, sortAsc)
		slog.Debug(config.MsgContactsSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}
	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(displayContacts), contactColumns
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(displayContacts) {
				return
			}
			c := displayContacts[id.Row]
			switch id.Col {
			case config.ColIDName:
				label.SetText(c.Name)
			case config.ColIDDate:
				label.SetText(birthdayText(c))
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(headerPlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		text := config.ColName
		if id.Col == config.ColIDDate {
			text = config.ColBirthday
		}
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			performSort()
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)

	addBtn := widget.NewButtonWithIcon(config.BtnAddMarkers, theme.ContentAddIcon(), func() {
		added := app.addContactMarkers()
		dialog.ShowInformation(config.TitleContacts, fmt.Sprintf(config.MsgMarkersAdded, added), w)
	})
	addBtn.Importance = widget.HighImportance

	w.SetContent(container.NewBorder(nil, addBtn, nil, nil, table))
	w.SetOnClosed(func() {
		app.contactsWindow = nil
	})
	w.Show()
}
