package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/calendar"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/tartampluch/go-lifeweeks/internal/palette"
)

// Fill colors, one per token.
var fills = map[palette.Token]color.NRGBA{
	palette.Rose:    {R: 0xfb, G: 0x71, B: 0x85, A: 0xff},
	palette.Amber:   {R: 0xfb, G: 0xbf, B: 0x24, A: 0xff},
	palette.Emerald: {R: 0x34, G: 0xd3, B: 0x99, A: 0xff},
	palette.Sky:     {R: 0x38, G: 0xbd, B: 0xf8, A: 0xff},
	palette.Violet:  {R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff},
	palette.Pink:    {R: 0xf4, G: 0x72, B: 0xb6, A: 0xff},
	palette.Lime:    {R: 0xa3, G: 0xe6, B: 0x35, A: 0xff},
	palette.Cyan:    {R: 0x22, G: 0xd3, B: 0xee, A: 0xff},
	palette.Orange:  {R: 0xfb, G: 0x92, B: 0x3c, A: 0xff},
	palette.Indigo:  {R: 0x81, G: 0x8c, B: 0xf8, A: 0xff},
	palette.Neutral: {R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff},
}

// Text colors are darker shades so labels stay readable on white.
var texts = map[palette.TextToken]color.NRGBA{
	palette.Rose.Text():    {R: 0xbe, G: 0x12, B: 0x3c, A: 0xff},
	palette.Amber.Text():   {R: 0xb4, G: 0x53, B: 0x09, A: 0xff},
	palette.Emerald.Text(): {R: 0x04, G: 0x78, B: 0x57, A: 0xff},
	palette.Sky.Text():     {R: 0x03, G: 0x69, B: 0xa1, A: 0xff},
	palette.Violet.Text():  {R: 0x6d, G: 0x28, B: 0xd9, A: 0xff},
	palette.Pink.Text():    {R: 0xbe, G: 0x18, B: 0x5d, A: 0xff},
	palette.Lime.Text():    {R: 0x4d, G: 0x7c, B: 0x0f, A: 0xff},
	palette.Cyan.Text():    {R: 0x0e, G: 0x74, B: 0x90, A: 0xff},
	palette.Orange.Text():  {R: 0xc2, G: 0x41, B: 0x0c, A: 0xff},
	palette.Indigo.Text():  {R: 0x43, G: 0x38, B: 0xca, A: 0xff},
	palette.Neutral.Text(): {R: 0x37, G: 0x41, B: 0x51, A: 0xff},
}

// resolve maps a stored color (token or legacy class) to a known token.
func resolve(t palette.Token) palette.Token {
	if tok, ok := palette.Lookup(string(t)); ok {
		return tok
	}
	return palette.Neutral
}

func fillColor(t palette.Token) color.Color {
	return fills[resolve(t)]
}

func textColor(t palette.Token) color.Color {
	return texts[resolve(t).Text()]
}

// gridModel is everything the grid draws for one configuration and day.
type gridModel struct {
	rows      []calendar.Row
	colors    palette.Assignment
	labels    map[int]calendar.Label
	placement calendar.Placement
	markers   []lifeconfig.DateMarker
}

func newGridModel(cfg lifeconfig.LifeConfig, today lifeconfig.Date) (gridModel, error) {
	birth, err := cfg.BirthDate()
	if err != nil {
		return gridModel{}, fmt.Errorf("%s: %w", config.ErrBirthdate, err)
	}

	rows := calendar.BuildGridRows(birth, cfg.TotalYears, cfg.Periods)
	colors := palette.AssignColors(cfg.Periods)
	markers := calendar.Markers(cfg, today)

	return gridModel{
		rows:      rows,
		colors:    colors,
		labels:    calendar.LabelRows(rows, colors),
		placement: calendar.PlaceMarkers(birth, cfg.TotalYears, markers),
		markers:   markers,
	}, nil
}

// cellToken is the palette token of one cell, Neutral when unassigned.
func (m gridModel) cellToken(row, week int) palette.Token {
	c := m.rows[row].Cells[week]
	if c.PeriodIndex == calendar.NoPeriod {
		return palette.Neutral
	}
	return resolve(m.colors.Token(c.PeriodIndex))
}

// markerToken is the color of a row annotation, Neutral when unset.
func markerToken(m lifeconfig.DateMarker) palette.Token {
	return resolve(palette.Token(m.Color))
}

// Muted gray of tick numbers and of row annotations without a color.
var muted = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}

// Star fill drawn over marked cells.
var starColor = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}

// markerColors returns the border and text colors of a row annotation.
func markerColors(m lifeconfig.DateMarker) (border, text color.Color) {
	t := markerToken(m)
	if t == palette.Neutral {
		return muted, muted
	}
	return fillColor(t), textColor(t)
}

// fixedLayout reports a precomputed size and leaves children where they
// were placed.
type fixedLayout struct {
	size fyne.Size
}

func (l *fixedLayout) Layout([]fyne.CanvasObject, fyne.Size) {}

func (l *fixedLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return l.size
}

func newText(s string, c color.Color, size float32, style fyne.TextStyle, pos fyne.Position) *canvas.Text {
	t := canvas.NewText(s, c)
	t.TextSize = size
	t.TextStyle = style
	t.Resize(t.MinSize())
	t.Move(pos)
	return t
}

// newTextRight places text so that it ends at right.
func newTextRight(s string, c color.Color, size float32, style fyne.TextStyle, right, y float32) *canvas.Text {
	t := newText(s, c, size, style, fyne.Position{})
	t.Move(fyne.NewPos(right-t.Size().Width, y))
	return t
}

// render lays the grid out as: period labels | year ticks | cells | row
// annotations, under the title and week tick rows.
func (m gridModel) render() *fyne.Container {
	const step = config.CellSize + config.CellGap
	yearLeft := float32(config.LabelColWidth)
	gridLeft := yearLeft + config.YearColWidth
	gridRight := gridLeft + float32(config.WeeksPerRow*step)
	ticksTop := float32(config.TitleHeight)
	top := ticksTop + config.HeaderHeight

	plain, bold := fyne.TextStyle{}, fyne.TextStyle{Bold: true}

	var objs []fyne.CanvasObject

	// Title row
	objs = append(objs,
		newText(config.TitleText, texts[palette.Neutral.Text()], config.TitleTextSize, bold, fyne.NewPos(gridLeft, 0)),
		newTextRight(config.SubtitleText, muted, config.TickTextSize, bold, gridRight, config.TitleTextSize/2))

	// Week ticks, numbered from 1
	for w := config.WeekTickEvery; w <= config.WeeksPerRow; w += config.WeekTickEvery {
		objs = append(objs, newText(fmt.Sprint(w), muted, config.TickTextSize, plain,
			fyne.NewPos(gridLeft+float32((w-1)*step), ticksTop)))
	}

	for r, row := range m.rows {
		y := top + float32(r*step)

		if lbl, ok := m.labels[r]; ok {
			objs = append(objs, newTextRight(lbl.Text, texts[lbl.Color], config.LabelTextSize, bold, yearLeft-config.CellGap, y))
		}
		if r%config.YearTickEvery == 0 {
			objs = append(objs, newTextRight(fmt.Sprint(r), muted, config.TickTextSize, plain, gridLeft-config.CellSize/2, y))
		}

		for w := range row.Cells {
			x := gridLeft + float32(w*step)
			rect := canvas.NewRectangle(fillColor(m.cellToken(r, w)))
			rect.Resize(fyne.NewSquareSize(config.CellSize))
			rect.Move(fyne.NewPos(x, y))
			objs = append(objs, rect)

			if m.placement.Starred(r, w) {
				objs = append(objs, newText(config.StarGlyph, starColor, config.TickTextSize, plain, fyne.NewPos(x, y)))
			}
		}

		if mk, ok := m.placement.RowMarkers[r]; ok {
			border, text := markerColors(mk)
			line := canvas.NewRectangle(border)
			line.Resize(fyne.NewSize(config.MarkerColWidth, config.MarkerBorder))
			line.Move(fyne.NewPos(gridRight, y))
			objs = append(objs, line, newTextRight(mk.Title, text, config.LabelTextSize, bold, gridRight+config.MarkerColWidth, y))
		}
	}

	size := fyne.NewSize(
		gridRight+config.MarkerColWidth,
		top+float32(len(m.rows)*step),
	)
	return container.New(&fixedLayout{size: size}, objs...)
}

// legend lists every period in color order, then the unassigned swatch.
func (m gridModel) legend(periods []lifeconfig.LifePeriod) []fyne.CanvasObject {
	swatch := func(t palette.Token, label string) fyne.CanvasObject {
		rect := canvas.NewRectangle(fillColor(t))
		rect.SetMinSize(fyne.NewSquareSize(config.CellSize))
		return container.NewHBox(container.NewCenter(rect), widget.NewLabel(label))
	}

	var items []fyne.CanvasObject
	for _, i := range m.colors.Order() {
		items = append(items, swatch(resolve(m.colors.Token(i)), periods[i].Label))
	}
	return append(items, swatch(palette.Neutral, config.LegendUnassign))
}

// calendarView owns the widgets redrawn when the configuration changes.
type calendarView struct {
	grid   *fyne.Container
	legend *fyne.Container
	status *widget.Label
}

func newCalendarView() *calendarView {
	return &calendarView{
		grid:   container.NewStack(),
		legend: container.NewGridWithColumns(config.LegendColumns),
		status: widget.NewLabel(""),
	}
}

// refreshView redraws the grid from the current configuration. It must run
// on the fyne thread.
func (app *LifeWeeksApp) refreshView() {
	if app.view == nil {
		return
	}
	cfg := app.Config()

	model, err := newGridModel(cfg, app.today())
	if err != nil {
		app.view.status.SetText(err.Error())
		app.view.status.Show()
		app.view.grid.Objects = nil
		app.view.legend.Objects = nil
	} else {
		app.view.status.Hide()
		app.view.grid.Objects = []fyne.CanvasObject{model.render()}
		app.view.legend.Objects = model.legend(cfg.Periods)
	}
	app.view.grid.Refresh()
	app.view.legend.Refresh()
}
