package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"littlepomo/internal/core/session"
	"littlepomo/internal/core/timekeeper"
	"littlepomo/internal/logging"
	"littlepomo/internal/notify"
	"littlepomo/internal/platform"
	"littlepomo/internal/storage"
	"littlepomo/internal/tasks"
	"littlepomo/internal/ui/clockface"
	"littlepomo/internal/ui/overlay"
	"littlepomo/internal/ui/preferences"
	"littlepomo/internal/ui/taskpanel"
	"littlepomo/internal/ui/theme"
	"littlepomo/internal/ui/tray"
	"littlepomo/resources"
)

func run(opts options) error {
	logger := logging.New(os.Stderr, opts.LogLevel)

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("already running, activating existing window")
		return platform.ActivateRunningInstance(appName)
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	dirs, err := platform.ResolveDirs(appName, opts.ConfigDir, opts.DataDir)
	if err != nil {
		return err
	}
	if err := dirs.Ensure(); err != nil {
		return err
	}

	settingsPath := storage.SettingsPath(dirs.Config)
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logger.Warn("using default settings", "path", settingsPath, "error", err)
	}

	store, err := tasks.Open(filepath.Join(dirs.Data, tasks.DBFileName))
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.AppLogo))
	appTheme := theme.New(settings.Theme, settings.Appearance)
	fyneApp.Settings().SetTheme(appTheme)

	config := settings.TimeKeeperConfig()
	keeper := timekeeper.New(config, timekeeper.Config{Logger: logger})
	defer keeper.Stop()

	mainWindow := fyneApp.NewWindow(clockface.AppTitle)
	view := clockface.New(mainWindow, keeper, config)
	view.SetColors(appTheme.Palette(), appTheme.Environment())
	view.SetSessions(0, settings.LongBreakInterval)

	panel := taskpanel.New(store, logger)
	panel.SetOnActiveChanged(func(task tasks.Task, ok bool) {
		if !ok {
			view.SetActiveTask("")
			return
		}
		view.SetActiveTask(task.Text)
	})

	split := container.NewHSplit(view.Content(), panel.Content())
	split.Offset = 0.6
	mainWindow.SetContent(split)
	mainWindow.Resize(fyne.NewSize(860, 560))

	overlayWindow := overlay.New(fyneApp, appTheme.Palette(), appTheme.Environment())
	notifier := notify.New(overlayWindow, fyneApp, logger)
	notifier.SetDesktopEnabled(settings.NotificationsEnabled)

	keeper.SetMode(opts.Mode)
	keeper.SetRenderer(view)
	keeper.SetNotifier(notifier)

	showMain := func() {
		mainWindow.Show()
		mainWindow.RequestFocus()
		keeper.Wake()
	}
	quit := func() {
		keeper.Stop()
		fyneApp.Quit()
	}

	var prefsWindow *preferences.Window
	applyTheme := func(updated preferences.Settings) {
		appTheme := theme.New(updated.Theme, updated.Appearance)
		fyneApp.Settings().SetTheme(appTheme)
		view.SetColors(appTheme.Palette(), appTheme.Environment())
		overlayWindow.SetColors(appTheme.Palette(), appTheme.Environment())
	}
	apply := func(updated preferences.Settings, retime bool) {
		settings = updated
		applyTheme(settings)
		notifier.SetDesktopEnabled(settings.NotificationsEnabled)
		config := settings.TimeKeeperConfig()
		view.SetDurations(config)
		if retime {
			keeper.UpdateConfig(config)
		}
		view.SetSessions(keeper.Current().SessionsCompleted, settings.LongBreakInterval)
	}

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		apply(updated, true)
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			logger.Error("save settings", "path", settingsPath, "error", err)
		}
	}, applyTheme)

	toggleAppearance := func() {
		updated := settings.ToggleAppearance()
		apply(updated, false)
		prefsWindow.UpdateSettings(updated)
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			logger.Error("save settings", "path", settingsPath, "error", err)
		}
	}

	mainWindow.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("Pomo",
			fyne.NewMenuItem("Settings", prefsWindow.Show),
			fyne.NewMenuItem("Toggle Light/Dark", toggleAppearance),
		),
	))
	mainWindow.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyL,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) { toggleAppearance() })

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        showMain,
			OnToggle:      keeper.Toggle,
			OnReset:       keeper.Reset,
			OnSkip:        keeper.Skip,
			OnMode:        keeper.SetMode,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.TrayPaused))
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.SetMaster()
	}

	events := keeper.Subscribe(16)
	go watchEvents(events, eventHandlers{
		logger: logger,
		store:  store,
		onTaskChange: func() {
			fyne.Do(panel.Reload)
		},
		onStatus: func(event timekeeper.Event, runningChanged bool) {
			fyne.Do(func() {
				view.SetSessions(event.SessionsCompleted, settings.LongBreakInterval)
				if trayManager == nil {
					return
				}
				trayManager.Update(event.Mode, event.Running, event.Sample.RemainingWhole)
				if runningChanged {
					desktopApp.SetSystemTrayIcon(trayIcon(event.Running))
				}
			})
		},
	})

	fyneApp.Lifecycle().SetOnStarted(keeper.Refresh)
	fyneApp.Lifecycle().SetOnEnteredForeground(keeper.Wake)
	go platform.NewWakeDetector().Run(ctx, keeper.Wake)

	go func() {
		if err := guard.Serve(ctx, func() { fyne.Do(showMain) }); err != nil {
			logger.Warn("single instance listener stopped", "error", err)
		}
	}()

	watchSettings(ctx, settingsPath, logger, func(loaded preferences.Settings) {
		fyne.Do(func() {
			if loaded == settings {
				return
			}
			logger.Info("settings changed on disk", "path", settingsPath)
			apply(loaded, settings.TimingChanged(loaded))
			prefsWindow.UpdateSettings(loaded)
		})
	})

	panel.Reload()
	mainWindow.Show()
	fyneApp.Run()
	return nil
}

func trayIcon(running bool) fyne.Resource {
	if running {
		return resources.MustLogo(resources.TrayRunning)
	}
	return resources.MustLogo(resources.TrayPaused)
}

// eventHandlers receives the side effects of timekeeper events.
type eventHandlers struct {
	logger       *slog.Logger
	store        pomodoroRecorder
	onTaskChange func()
	onStatus     func(event timekeeper.Event, runningChanged bool)
}

type pomodoroRecorder interface {
	RecordPomodoro() (tasks.Task, bool, error)
}

// watchEvents drains events until the channel is closed. Finished work
// intervals are credited to the active task; status updates are forwarded
// only when the visible state changes.
func watchEvents(events <-chan timekeeper.Event, handlers eventHandlers) {
	var last timekeeper.Event
	first := true
	for event := range events {
		if event.Type == timekeeper.EventComplete && event.Completion.Completed == session.ModeWork {
			task, ok, err := handlers.store.RecordPomodoro()
			switch {
			case err != nil:
				handlers.logger.Error("record pomodoro", "error", err)
			case ok:
				handlers.logger.Debug("pomodoro recorded", "task", task.ID, "pomos", task.Pomos)
				handlers.onTaskChange()
			}
		}

		changed := first ||
			event.Mode != last.Mode ||
			event.Running != last.Running ||
			event.SessionsCompleted != last.SessionsCompleted ||
			event.Sample.RemainingWhole != last.Sample.RemainingWhole
		if changed {
			handlers.onStatus(event, first || event.Running != last.Running)
		}
		last = event
		first = false
	}
}

func watchSettings(ctx context.Context, path string, logger *slog.Logger, onChange func(preferences.Settings)) {
	cfg := storage.DefaultWatcherConfig(path)
	cfg.Logger = logger
	watcher, err := storage.NewWatcher(cfg)
	if err != nil {
		logger.Warn("settings watcher unavailable", "error", err)
		return
	}
	changes, err := watcher.Start()
	if err != nil {
		logger.Warn("settings watcher unavailable", "error", err)
		_ = watcher.Stop()
		return
	}

	go func() {
		<-ctx.Done()
		_ = watcher.Stop()
	}()

	go func() {
		for range changes {
			loaded, err := storage.LoadSettings(path)
			if err != nil {
				logger.Warn("ignoring settings change", "path", path, "error", err)
				continue
			}
			onChange(loaded)
		}
	}()
}
