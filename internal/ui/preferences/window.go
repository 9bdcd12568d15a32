package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"restie/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// SaveFunc applies new settings and returns the accepted value or a validation error.
type SaveFunc func(model.BreakSettings) (model.BreakSettings, error)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   model.BreakSettings
	onSave     SaveFunc
	microInt   *widget.Entry
	microDur   *widget.Entry
	longEvery  *widget.Entry
	longDur    *widget.Entry
	fullscreen *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings model.BreakSettings, onSave SaveFunc) *Window {
	window := app.NewWindow("Restie - Preferences")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		microInt:   widget.NewEntry(),
		microDur:   widget.NewEntry(),
		longEvery:  widget.NewEntry(),
		longDur:    widget.NewEntry(),
		fullscreen: widget.NewCheck("Fullscreen breaks", nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Breaks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Microbreak every"), prefs.microInt, widget.NewLabel("min (1-60)")),
		container.NewHBox(widget.NewLabel("Microbreak duration"), prefs.microDur, widget.NewLabel("sec (5-300)")),
		container.NewHBox(widget.NewLabel("Long break after"), prefs.longEvery, widget.NewLabel("microbreaks (1-10)")),
		container.NewHBox(widget.NewLabel("Long break duration"), prefs.longDur, widget.NewLabel("min (1-60)")),
		prefs.fullscreen,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(450, 320))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.BreakSettings) {
	prefs.settings = settings
	prefs.microInt.SetText(strconv.Itoa(settings.MicrobreakIntervalMinutes))
	prefs.microDur.SetText(strconv.Itoa(settings.MicrobreakDurationSeconds))
	prefs.longEvery.SetText(strconv.Itoa(settings.LongbreakIntervalMicrobreaks))
	prefs.longDur.SetText(strconv.Itoa(settings.LongbreakDurationMinutes))
	prefs.fullscreen.SetChecked(settings.FullscreenBreaks)
}

func (prefs *Window) handleSave() {
	settings, err := prefs.formSettings()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	if prefs.onSave != nil {
		accepted, err := prefs.onSave(settings)
		if err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
		settings = accepted
	}
	prefs.settings = settings
	prefs.window.Hide()
}

func (prefs *Window) formSettings() (model.BreakSettings, error) {
	settings := prefs.settings
	var err error
	if settings.MicrobreakIntervalMinutes, err = parseWholeNumber("microbreak interval", prefs.microInt.Text); err != nil {
		return model.BreakSettings{}, err
	}
	if settings.MicrobreakDurationSeconds, err = parseWholeNumber("microbreak duration", prefs.microDur.Text); err != nil {
		return model.BreakSettings{}, err
	}
	if settings.LongbreakIntervalMicrobreaks, err = parseWholeNumber("long break interval", prefs.longEvery.Text); err != nil {
		return model.BreakSettings{}, err
	}
	if settings.LongbreakDurationMinutes, err = parseWholeNumber("long break duration", prefs.longDur.Text); err != nil {
		return model.BreakSettings{}, err
	}
	settings.FullscreenBreaks = prefs.fullscreen.Checked
	return settings, nil
}

// parseWholeNumber leaves range checks to the settings validation.
func parseWholeNumber(name, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return parsed, nil
}
