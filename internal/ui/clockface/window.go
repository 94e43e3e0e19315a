// Package clockface renders the session clock: dial, digital readout,
// progress, title, mode tabs and session dots.
package clockface

import (
	"image/color"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"littlepomo/internal/core/session"
	"littlepomo/internal/ui/theme"
)

// Commands is the command surface the view binds to its controls.
type Commands interface {
	Toggle()
	Reset()
	Skip()
	SetMode(mode session.Mode)
}

type frame struct {
	sample  session.Sample
	mode    session.Mode
	running bool
}

// View is the main timer panel. Render may be called from any goroutine;
// everything else must run on the fyne goroutine.
type View struct {
	window    fyne.Window
	commands  Commands
	durations session.DurationProvider

	dial       *dial
	dialHolder *fyne.Container
	readout    *canvas.Text
	modeLabel  *canvas.Text
	progress   *widget.ProgressBar
	taskLabel  *widget.Label
	toggle     *widget.Button
	reset      *widget.Button
	skip       *widget.Button
	tabs       map[session.Mode]*widget.Button
	dots       *fyne.Container
	content    fyne.CanvasObject

	palette theme.Palette
	env     theme.Environment

	mu       sync.Mutex
	latest   frame
	pending  atomic.Bool
	dispatch func(func())
}

// New builds the view and binds shortcuts on window: Space toggles, R resets
// and S skips. Shortcuts do not fire while a text field has focus.
func New(window fyne.Window, commands Commands, durations session.DurationProvider) *View {
	view := &View{
		window:    window,
		commands:  commands,
		durations: durations,
		dial:      newDial(),
		readout:   canvas.NewText(FormatTime(0), color.White),
		modeLabel: canvas.NewText("", color.White),
		progress:  widget.NewProgressBar(),
		taskLabel: widget.NewLabel("No task selected"),
		tabs:      make(map[session.Mode]*widget.Button, 3),
		dots:      container.NewHBox(),
		latest:    frame{mode: session.ModeWork},
		dispatch:  fyne.Do,
	}

	view.readout.TextSize = 44
	view.readout.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.readout.Alignment = fyne.TextAlignCenter
	view.modeLabel.TextSize = 14
	view.modeLabel.Alignment = fyne.TextAlignCenter
	view.progress.TextFormatter = func() string { return "" }
	view.taskLabel.Alignment = fyne.TextAlignCenter
	view.taskLabel.Truncation = fyne.TextTruncateEllipsis

	tabs := container.NewHBox(layout.NewSpacer())
	for _, mode := range session.Modes() {
		button := widget.NewButton(mode.Label(), func() { view.commands.SetMode(mode) })
		view.tabs[mode] = button
		tabs.Add(button)
	}
	tabs.Add(layout.NewSpacer())

	view.toggle = widget.NewButton("Start", func() { view.commands.Toggle() })
	view.toggle.Importance = widget.HighImportance
	view.reset = widget.NewButton("Reset", func() { view.commands.Reset() })
	view.skip = widget.NewButton("Skip", func() { view.commands.Skip() })

	view.dialHolder = container.New(view.dial, view.dial.objects()...)
	readout := container.NewVBox(view.readout, view.modeLabel)

	view.content = container.NewVBox(
		tabs,
		container.NewStack(view.dialHolder, container.NewCenter(readout)),
		view.progress,
		container.NewCenter(view.dots),
		view.taskLabel,
		container.NewHBox(layout.NewSpacer(), view.reset, view.toggle, view.skip, layout.NewSpacer()),
	)

	window.Canvas().SetOnTypedKey(view.handleKey)
	return view
}

// Content returns the view's root object.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// Render records the latest sample and schedules a repaint. Bursts of
// renders between repaints collapse into one.
func (view *View) Render(sample session.Sample, mode session.Mode, running bool) {
	view.mu.Lock()
	view.latest = frame{sample: sample, mode: mode, running: running}
	view.mu.Unlock()

	if view.pending.CompareAndSwap(false, true) {
		view.dispatch(view.repaint)
	}
}

// SetDurations replaces the source of interval lengths used for the dial.
func (view *View) SetDurations(durations session.DurationProvider) {
	view.durations = durations
	view.repaint()
}

// SetSessions redraws the session dots.
func (view *View) SetSessions(sessionsCompleted, longBreakInterval int) {
	filled := FilledDots(sessionsCompleted, longBreakInterval)
	view.dots.RemoveAll()
	for i := 0; i < longBreakInterval; i++ {
		dot := canvas.NewCircle(view.env.Surface3)
		if i < filled {
			dot.FillColor = view.palette.Start
		}
		view.dots.Add(container.NewGridWrap(fyne.NewSize(10, 10), dot))
	}
	view.dots.Refresh()
}

// SetActiveTask shows the active task's text, or a placeholder.
func (view *View) SetActiveTask(text string) {
	if text == "" {
		text = "No task selected"
	}
	view.taskLabel.SetText(text)
}

// SetColors repaints the custom-drawn parts for a palette.
func (view *View) SetColors(palette theme.Palette, env theme.Environment) {
	view.palette = palette
	view.env = env
	view.dial.setColors(palette, env)
	view.readout.Color = env.Text
	view.modeLabel.Color = env.TextMuted
	view.dialHolder.Refresh()
	view.readout.Refresh()
	view.modeLabel.Refresh()
}

func (view *View) repaint() {
	view.pending.Store(false)
	view.mu.Lock()
	current := view.latest
	view.mu.Unlock()

	total := 0
	if view.durations != nil {
		total = view.durations.SecondsFor(current.mode)
	}
	if total < 1 {
		total = 1
	}

	minute, second := HandAngles(current.sample.ElapsedExact, total)
	view.dial.setAngles(minute, second)
	view.dialHolder.Refresh()

	view.readout.Text = FormatTime(current.sample.RemainingWhole)
	view.readout.Refresh()
	view.modeLabel.Text = current.mode.Label()
	view.modeLabel.Refresh()
	view.progress.SetValue(ProgressFraction(current.sample.ElapsedExact, total))

	if current.running {
		view.toggle.SetText("Pause")
	} else {
		view.toggle.SetText("Start")
	}
	for mode, button := range view.tabs {
		if mode == current.mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.LowImportance
		}
		button.Refresh()
	}
	view.window.SetTitle(Title(current.mode, current.running))
}

func (view *View) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		view.commands.Toggle()
	case fyne.KeyR:
		view.commands.Reset()
	case fyne.KeyS:
		view.commands.Skip()
	}
}
