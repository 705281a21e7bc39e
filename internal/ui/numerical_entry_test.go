package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lifeweeks/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Digit_Five", '5', true},
		{"Letter_a", 'a', false},
		{"Letter_Z", 'Z', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted {
				assert.Equal(t, string(tt.input), entry.Text)
			} else {
				assert.Empty(t, entry.Text)
			}
		})
	}
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	entry := ui.NewNumericalEntry()
	assert.Equal(t, mobile.NumberKeyboard, entry.Keyboard())
}

// SetText bypasses the rune filter, as a paste would.
func TestNumericalEntry_DirectSetText(t *testing.T) {
	entry := ui.NewNumericalEntry()
	entry.SetText("abc")
	assert.Equal(t, "abc", entry.Text)
}

func TestNumericalEntry_Value(t *testing.T) {
	entry := ui.NewNumericalEntry()

	entry.SetText("90")
	v, ok := entry.Value()
	assert.True(t, ok)
	assert.Equal(t, 90, v)

	for _, text := range []string{"", "abc", "9 0"} {
		entry.SetText(text)
		_, ok := entry.Value()
		assert.False(t, ok, text)
	}
}
