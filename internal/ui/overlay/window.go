package overlay

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"littlepomo/internal/notify"
	"littlepomo/internal/ui/theme"
)

// Window is the completion card shown when an interval finishes.
type Window struct {
	window     fyne.Window
	background *canvas.Rectangle
	accent     *canvas.Rectangle
	emoji      *canvas.Text
	title      *canvas.Text
	body       *canvas.Text
	dismiss    *widget.Button
	onDismiss  func()
}

const (
	overlayWidth  = float32(340)
	overlayHeight = float32(220)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the completion window, hidden.
func New(app fyne.App, palette theme.Palette, env theme.Environment) *Window {
	window := app.NewWindow("Little Pomo")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(env.Surface)
	background.CornerRadius = 18
	background.StrokeWidth = 1

	accent := canvas.NewRectangle(palette.Start)

	emoji := canvas.NewText("", env.Text)
	emoji.Alignment = fyne.TextAlignCenter
	emoji.TextSize = 40

	title := canvas.NewText("", env.Text)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 22

	body := canvas.NewText("", env.TextMuted)
	body.Alignment = fyne.TextAlignCenter
	body.TextSize = 15

	overlay := &Window{
		window:     window,
		background: background,
		accent:     accent,
		emoji:      emoji,
		title:      title,
		body:       body,
	}
	overlay.dismiss = widget.NewButton("Got it", overlay.handleDismiss)
	overlay.dismiss.Importance = widget.HighImportance

	content := container.New(&messageLayout{}, accent, emoji, title, body, overlay.dismiss)
	window.SetContent(container.NewStack(background, content))
	window.SetCloseIntercept(overlay.handleDismiss)
	overlay.SetColors(palette, env)

	return overlay
}

// ShowMessage fills the card and raises it. Must run on the fyne goroutine.
func (overlay *Window) ShowMessage(message notify.Message) {
	overlay.emoji.Text = message.Emoji
	overlay.title.Text = message.Title
	overlay.body.Text = message.Body
	overlay.emoji.Refresh()
	overlay.title.Refresh()
	overlay.body.Refresh()

	overlay.window.Resize(fyne.NewSize(overlayWidth, overlayHeight))
	overlay.window.CenterOnScreen()
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Hide closes the card.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// SetOnDismiss sets the handler run after the user closes the card.
func (overlay *Window) SetOnDismiss(handler func()) {
	overlay.onDismiss = handler
}

// SetColors repaints the card for a palette.
func (overlay *Window) SetColors(palette theme.Palette, env theme.Environment) {
	overlay.background.FillColor = env.Surface
	overlay.background.StrokeColor = palette.Glow(0.35)
	overlay.accent.FillColor = palette.Start
	overlay.emoji.Color = env.Text
	overlay.title.Color = env.Text
	overlay.body.Color = env.TextMuted

	for _, object := range []fyne.CanvasObject{overlay.background, overlay.accent, overlay.emoji, overlay.title, overlay.body} {
		canvas.Refresh(object)
	}
}

func (overlay *Window) handleDismiss() {
	overlay.window.Hide()
	if overlay.onDismiss != nil {
		overlay.onDismiss()
	}
}

// messageLayout stacks an accent bar, emoji, title, body and button.
type messageLayout struct{}

const (
	accentHeight = float32(4)
	messageGap   = float32(8)
)

func (layout *messageLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	accent, emoji, title, body, button := objects[0], objects[1], objects[2], objects[3], objects[4]

	accent.Move(fyne.NewPos(size.Width*0.3, 0))
	accent.Resize(fyne.NewSize(size.Width*0.4, accentHeight))

	pad := size.Height * 0.08
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	y := pad + accentHeight
	for _, text := range []fyne.CanvasObject{emoji, title, body} {
		textSize := text.MinSize()
		text.Move(fyne.NewPos(pad, y))
		text.Resize(fyne.NewSize(availableWidth, textSize.Height))
		y += textSize.Height + messageGap
	}

	buttonSize := button.MinSize()
	buttonWidth := buttonSize.Width * 1.4
	if buttonWidth > size.Width {
		buttonWidth = size.Width
	}
	buttonY := size.Height - pad - buttonSize.Height
	if buttonY < y {
		buttonY = y
	}
	button.Move(fyne.NewPos((size.Width-buttonWidth)/2, buttonY))
	button.Resize(fyne.NewSize(buttonWidth, buttonSize.Height))
}

func (layout *messageLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 5 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := accentHeight
	for _, object := range objects[1:] {
		objectSize := object.MinSize()
		if objectSize.Width > width {
			width = objectSize.Width
		}
		height += objectSize.Height + messageGap
	}
	return fyne.NewSize(width+40, height+40)
}

var _ notify.Presenter = (*Window)(nil)
