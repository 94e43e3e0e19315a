package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"littlepomo/internal/ui/theme"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	onPreview     func(Settings)
	pomo          *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	interval      *widget.Entry
	autoBreaks    *widget.Check
	autoPomos     *widget.Check
	notifications *widget.Check
	palette       *widget.Select
	appearance    *widget.RadioGroup
}

var appearanceLabels = map[theme.Appearance]string{
	theme.AppearanceDark:  "Dark",
	theme.AppearanceLight: "Light",
}

// New creates a preferences window. onPreview, when set, is called as the
// palette or appearance changes, before the settings are saved.
func New(app fyne.App, settings Settings, onSave func(Settings), onPreview func(Settings)) *Window {
	window := app.NewWindow("Little Pomo Settings")

	names := make([]string, 0, len(theme.Keys()))
	for _, palette := range theme.Palettes() {
		names = append(names, palette.Name)
	}

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		onPreview:     onPreview,
		pomo:          widget.NewEntry(),
		shortBreak:    widget.NewEntry(),
		longBreak:     widget.NewEntry(),
		interval:      widget.NewEntry(),
		autoBreaks:    widget.NewCheck("Auto-start breaks", nil),
		autoPomos:     widget.NewCheck("Auto-start pomodoros", nil),
		notifications: widget.NewCheck("Desktop notifications", nil),
		palette:       widget.NewSelect(names, nil),
		appearance:    widget.NewRadioGroup([]string{appearanceLabels[theme.AppearanceDark], appearanceLabels[theme.AppearanceLight]}, nil),
	}
	prefs.appearance.Horizontal = true
	prefs.UpdateSettings(settings)

	prefs.palette.OnChanged = func(string) { prefs.preview() }
	prefs.appearance.OnChanged = func(string) { prefs.preview() }

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.New(layout.NewFormLayout(),
			widget.NewLabel("Pomodoro (min)"), prefs.pomo,
			widget.NewLabel("Short break (min)"), prefs.shortBreak,
			widget.NewLabel("Long break (min)"), prefs.longBreak,
			widget.NewLabel("Long break every"), prefs.interval,
		),
		prefs.autoBreaks,
		prefs.autoPomos,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Look", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.palette,
		prefs.appearance,
		widget.NewSeparator(),
		prefs.notifications,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", prefs.handleCancel)
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 480))
	window.SetCloseIntercept(prefs.handleCancel)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.UpdateSettings(prefs.settings)
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.pomo.SetText(strconv.Itoa(int(settings.Pomo / time.Minute)))
	prefs.shortBreak.SetText(strconv.Itoa(int(settings.ShortBreak / time.Minute)))
	prefs.longBreak.SetText(strconv.Itoa(int(settings.LongBreak / time.Minute)))
	prefs.interval.SetText(strconv.Itoa(settings.LongBreakInterval))
	prefs.autoBreaks.SetChecked(settings.AutoStartBreaks)
	prefs.autoPomos.SetChecked(settings.AutoStartPomos)
	prefs.notifications.SetChecked(settings.NotificationsEnabled)

	palette, _ := theme.Lookup(settings.Theme)
	prefs.palette.SetSelected(palette.Name)
	prefs.appearance.SetSelected(appearanceLabels[theme.ParseAppearance(string(settings.Appearance))])
}

func (prefs *Window) collect() Settings {
	settings := prefs.settings
	defaults := DefaultSettings()

	settings.Pomo = time.Duration(parseMinutes(prefs.pomo.Text, defaults.Pomo)) * time.Minute
	settings.ShortBreak = time.Duration(parseMinutes(prefs.shortBreak.Text, defaults.ShortBreak)) * time.Minute
	settings.LongBreak = time.Duration(parseMinutes(prefs.longBreak.Text, defaults.LongBreak)) * time.Minute
	settings.LongBreakInterval = parseInt(prefs.interval.Text, defaults.LongBreakInterval)
	settings.AutoStartBreaks = prefs.autoBreaks.Checked
	settings.AutoStartPomos = prefs.autoPomos.Checked
	settings.NotificationsEnabled = prefs.notifications.Checked
	settings.Theme = paletteKey(prefs.palette.Selected)
	settings.Appearance = theme.AppearanceDark
	if prefs.appearance.Selected == appearanceLabels[theme.AppearanceLight] {
		settings.Appearance = theme.AppearanceLight
	}

	return settings.Clamp()
}

func (prefs *Window) preview() {
	if prefs.onPreview != nil {
		prefs.onPreview(prefs.collect())
	}
}

func (prefs *Window) handleSave() {
	settings := prefs.collect()
	prefs.settings = settings
	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) handleCancel() {
	// Undo any live palette preview.
	if prefs.onPreview != nil {
		prefs.onPreview(prefs.settings)
	}
	prefs.window.Hide()
}

func paletteKey(name string) string {
	for _, palette := range theme.Palettes() {
		if palette.Name == name {
			return palette.Key
		}
	}
	return theme.DefaultPalette
}

func parseMinutes(value string, fallback time.Duration) int {
	return parseInt(value, int(fallback/time.Minute))
}

// parseInt returns fallback for blank, malformed or zero input.
func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed == 0 {
		return fallback
	}
	return parsed
}
