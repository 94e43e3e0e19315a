// Package notify tells the user that an interval has finished.
package notify

import (
	"log/slog"
	"sync/atomic"

	"fyne.io/fyne/v2"

	"littlepomo/internal/core/session"
)

// Message is the text shown when an interval completes.
type Message struct {
	Emoji string
	Title string
	Body  string
}

// Headline joins the emoji and title.
func (message Message) Headline() string {
	if message.Emoji == "" {
		return message.Title
	}
	return message.Emoji + " " + message.Title
}

// MessageFor returns the message for a naturally completed interval.
func MessageFor(completed session.Mode, isLongBreak bool) Message {
	if completed != session.ModeWork {
		return Message{Emoji: "💪", Title: "Break Over!", Body: "Ready for the next session?"}
	}
	if isLongBreak {
		return Message{Emoji: "🎉", Title: "Session Complete!", Body: "Nice work — time for a long break!"}
	}
	return Message{Emoji: "🎉", Title: "Session Complete!", Body: "Time for a short break!"}
}

// Presenter shows a message inside the application.
type Presenter interface {
	ShowMessage(message Message)
}

// Sender delivers desktop notifications. fyne.App satisfies it.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Notifier presents completions in-app and, when enabled, on the desktop.
type Notifier struct {
	presenter Presenter
	sender    Sender
	logger    *slog.Logger
	desktop   atomic.Bool
	dispatch  func(func())
}

// New creates a notifier. Either presenter or sender may be nil.
func New(presenter Presenter, sender Sender, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{
		presenter: presenter,
		sender:    sender,
		logger:    logger.With("component", "notify"),
		dispatch:  fyne.Do,
	}
}

// SetDesktopEnabled toggles desktop notifications.
func (notifier *Notifier) SetDesktopEnabled(enabled bool) {
	notifier.desktop.Store(enabled)
}

// Notify is called by the timekeeper with its lock held, so all UI work is
// handed to the fyne main goroutine.
func (notifier *Notifier) Notify(completed session.Mode, isLongBreak bool) {
	message := MessageFor(completed, isLongBreak)
	desktop := notifier.desktop.Load()
	notifier.logger.Debug("completion", "mode", completed, "long_break", isLongBreak, "desktop", desktop)

	notifier.dispatch(func() {
		if notifier.presenter != nil {
			notifier.presenter.ShowMessage(message)
		}
		if desktop && notifier.sender != nil {
			notifier.sender.SendNotification(fyne.NewNotification(message.Headline(), message.Body))
		}
	})
}
