package main

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"littlepomo/internal/core/session"
	"littlepomo/internal/core/timekeeper"
	"littlepomo/internal/tasks"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd("test")

	for _, name := range []string{"config-dir", "data-dir", "log-level", "mode"} {
		require.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	require.Equal(t, "info", cmd.Flags().Lookup("log-level").DefValue)
	require.Equal(t, string(session.ModeWork), cmd.Flags().Lookup("mode").DefValue)
	require.Equal(t, "test", cmd.Version)
}

func TestResolveOptions(t *testing.T) {
	v := viper.New()
	v.Set("config_dir", "/tmp/cfg")
	v.Set("data_dir", "/tmp/data")
	v.Set("log_level", "debug")
	v.Set("mode", "short")

	opts, err := resolveOptions(v)
	require.NoError(t, err)
	require.Equal(t, options{
		ConfigDir: "/tmp/cfg",
		DataDir:   "/tmp/data",
		LogLevel:  "debug",
		Mode:      session.ModeShortBreak,
	}, opts)
}

func TestResolveOptions_InvalidMode(t *testing.T) {
	v := viper.New()
	v.Set("mode", "nap")

	_, err := resolveOptions(v)
	require.ErrorIs(t, err, session.ErrUnknownMode)
}

func TestResolveOptions_Environment(t *testing.T) {
	t.Setenv("LITTLEPOMO_MODE", "long")
	t.Setenv("LITTLEPOMO_LOG_LEVEL", "warn")

	v := viper.New()
	v.SetEnvPrefix(envName)
	v.AutomaticEnv()

	opts, err := resolveOptions(v)
	require.NoError(t, err)
	require.Equal(t, session.ModeLongBreak, opts.Mode)
	require.Equal(t, "warn", opts.LogLevel)
}

type fakeRecorder struct {
	calls int
	task  tasks.Task
	ok    bool
	err   error
}

func (recorder *fakeRecorder) RecordPomodoro() (tasks.Task, bool, error) {
	recorder.calls++
	return recorder.task, recorder.ok, recorder.err
}

type statusCall struct {
	event          timekeeper.Event
	runningChanged bool
}

func collectEvents(t *testing.T, recorder *fakeRecorder, events ...timekeeper.Event) (int, []statusCall) {
	t.Helper()
	ch := make(chan timekeeper.Event, len(events))
	for _, event := range events {
		ch <- event
	}
	close(ch)

	taskChanges := 0
	var statuses []statusCall
	watchEvents(ch, eventHandlers{
		logger:       slog.New(slog.DiscardHandler),
		store:        recorder,
		onTaskChange: func() { taskChanges++ },
		onStatus: func(event timekeeper.Event, runningChanged bool) {
			statuses = append(statuses, statusCall{event: event, runningChanged: runningChanged})
		},
	})
	return taskChanges, statuses
}

func tick(mode session.Mode, running bool, remaining int) timekeeper.Event {
	return timekeeper.Event{
		Type:    timekeeper.EventTick,
		Mode:    mode,
		Running: running,
		Sample:  session.Sample{RemainingWhole: remaining},
	}
}

func TestWatchEvents_CoalescesStatus(t *testing.T) {
	recorder := &fakeRecorder{}
	_, statuses := collectEvents(t, recorder,
		tick(session.ModeWork, true, 1500),
		tick(session.ModeWork, true, 1500),
		tick(session.ModeWork, true, 1499),
		tick(session.ModeWork, false, 1499),
	)

	require.Len(t, statuses, 3)
	require.True(t, statuses[0].runningChanged)
	require.False(t, statuses[1].runningChanged)
	require.True(t, statuses[2].runningChanged)
	require.Equal(t, 1499, statuses[2].event.Sample.RemainingWhole)
	require.Zero(t, recorder.calls)
}

func completion(completed session.Mode) timekeeper.Event {
	return timekeeper.Event{
		Type: timekeeper.EventComplete,
		Mode: session.ModeShortBreak,
		Completion: timekeeper.Completion{
			Completion: session.Completion{Completed: completed, Next: session.ModeShortBreak},
		},
	}
}

func TestWatchEvents_RecordsWorkCompletion(t *testing.T) {
	recorder := &fakeRecorder{task: tasks.Task{ID: "a", Pomos: 1}, ok: true}
	taskChanges, _ := collectEvents(t, recorder,
		completion(session.ModeWork),
		completion(session.ModeShortBreak),
	)

	require.Equal(t, 1, recorder.calls)
	require.Equal(t, 1, taskChanges)
}

func TestWatchEvents_NoActiveTask(t *testing.T) {
	recorder := &fakeRecorder{}
	taskChanges, _ := collectEvents(t, recorder, completion(session.ModeWork))

	require.Equal(t, 1, recorder.calls)
	require.Zero(t, taskChanges)
}

func TestWatchEvents_RecordError(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("disk full")}
	taskChanges, statuses := collectEvents(t, recorder, completion(session.ModeWork))

	require.Equal(t, 1, recorder.calls)
	require.Zero(t, taskChanges)
	require.Len(t, statuses, 1)
}
