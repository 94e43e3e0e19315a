package timekeeper

import (
	"log/slog"
	"sync"
	"time"

	"littlepomo/internal/core/model"
	"littlepomo/internal/core/session"
)

const (
	defaultFrameInterval  = 100 * time.Millisecond
	defaultAutoStartDelay = 3500 * time.Millisecond
)

// Renderer projects a clock reading onto the screen. It must not call back
// into the TimeKeeper.
type Renderer interface {
	Render(sample session.Sample, mode session.Mode, running bool)
}

// CompletionNotifier is told about every natural completion. It must not
// block or call back into the TimeKeeper.
type CompletionNotifier interface {
	Notify(mode session.Mode, isLongBreak bool)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	FrameInterval  time.Duration
	AutoStartDelay time.Duration
	Time           TimeSource
	Logger         *slog.Logger
}

// TimeKeeper drives a session clock: it runs the frame loop, applies the
// completion and auto-start policy, and fans events out to observers.
//
// All commands are serialized by one mutex. Every command cancels the pending
// frame and any pending auto-start before touching the clock, so at most one
// frame loop exists and a stale callback never mutates state.
type TimeKeeper struct {
	mu        sync.Mutex
	config    model.TimeKeeperConfig
	options   Config
	logger    *slog.Logger
	clock     *session.Clock
	renderer  Renderer
	notifier  CompletionNotifier
	frame     Timer
	frameSeq  uint64
	autoStart Timer
	autoSeq   uint64
	events    []chan Event
	stopped   bool
}

// New creates a TimeKeeper with an idle clock in work mode.
func New(config model.TimeKeeperConfig, options Config) *TimeKeeper {
	if options.FrameInterval <= 0 {
		options.FrameInterval = defaultFrameInterval
	}
	if options.AutoStartDelay <= 0 {
		options.AutoStartDelay = defaultAutoStartDelay
	}
	if options.Time == nil {
		options.Time = SystemTime()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &TimeKeeper{
		config:  config,
		options: options,
		logger:  logger.With("component", "timekeeper"),
		clock:   session.New(config),
	}
}

// SetRenderer injects the renderer.
func (keeper *TimeKeeper) SetRenderer(renderer Renderer) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.renderer = renderer
}

// SetNotifier injects the completion notifier.
func (keeper *TimeKeeper) SetNotifier(notifier CompletionNotifier) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.notifier = notifier
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Current returns the present state without changing it.
func (keeper *TimeKeeper) Current() Event {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	now := keeper.options.Time.Now()
	return keeper.eventLocked(EventStateChange, keeper.clock.Sample(now), now)
}

// Refresh renders the present state once.
func (keeper *TimeKeeper) Refresh() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.renderLocked(keeper.clock.Sample(keeper.options.Time.Now()))
}

// Start runs the current interval. Starting a running interval is a no-op.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.cancelAutoStartLocked()
	keeper.startLocked()
}

// Pause freezes the current interval. Pausing an idle interval is a no-op.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.cancelAutoStartLocked()
	keeper.pauseLocked()
}

// Toggle pauses a running interval or starts an idle one.
func (keeper *TimeKeeper) Toggle() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.cancelAutoStartLocked()
	if keeper.clock.Running() {
		keeper.pauseLocked()
		return
	}
	keeper.startLocked()
}

// Reset stops the clock and restarts the current interval from full duration.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped {
		return
	}
	keeper.cancelFrameLocked()
	keeper.cancelAutoStartLocked()
	now := keeper.options.Time.Now()
	keeper.clock.Reset(now)
	keeper.publishLocked(EventStateChange, now)
}

// Skip completes the current interval immediately without notification or
// auto-start.
func (keeper *TimeKeeper) Skip() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped {
		return
	}
	keeper.cancelFrameLocked()
	keeper.cancelAutoStartLocked()
	now := keeper.options.Time.Now()
	completion := keeper.clock.Skip(now, keeper.config.LongBreakInterval)
	keeper.finishLocked(Completion{Completion: completion, Skipped: true}, now)
}

// SetMode stops the clock and arms a full interval of mode.
func (keeper *TimeKeeper) SetMode(mode session.Mode) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped {
		return
	}
	keeper.cancelFrameLocked()
	keeper.cancelAutoStartLocked()
	keeper.clock.SetMode(mode)
	keeper.logger.Debug("mode set", "mode", mode)
	keeper.publishLocked(EventStateChange, keeper.options.Time.Now())
}

// UpdateConfig applies new durations and policy. The clock is stopped and the
// current mode re-armed with its new full duration.
func (keeper *TimeKeeper) UpdateConfig(config model.TimeKeeperConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped {
		return
	}
	keeper.cancelFrameLocked()
	keeper.cancelAutoStartLocked()
	keeper.config = config
	keeper.clock.SetDurations(config)
	keeper.logger.Debug("config applied", "mode", keeper.clock.Mode(), "total_seconds", keeper.clock.TotalSeconds())
	keeper.publishLocked(EventStateChange, keeper.options.Time.Now())
}

// Wake recovers from suspended scheduling: the pending frame is dropped, the
// clock is sampled and rendered at once, and the loop resumes. Missed frames
// are not replayed.
func (keeper *TimeKeeper) Wake() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped || !keeper.clock.Running() {
		return
	}
	keeper.cancelFrameLocked()
	keeper.logger.Debug("resumed from suspension")
	keeper.tickLocked()
}

// Stop cancels pending callbacks and closes observers. The TimeKeeper is
// unusable afterwards.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.cancelFrameLocked()
	keeper.cancelAutoStartLocked()
	keeper.stopped = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) startLocked() {
	if keeper.stopped || keeper.clock.Running() {
		return
	}
	now := keeper.options.Time.Now()
	keeper.clock.Start(now)
	keeper.logger.Debug("interval started", "mode", keeper.clock.Mode(), "remaining", keeper.clock.Sample(now).RemainingWhole)
	keeper.publishLocked(EventStateChange, now)
	keeper.scheduleFrameLocked()
}

func (keeper *TimeKeeper) pauseLocked() {
	keeper.cancelFrameLocked()
	if keeper.stopped || !keeper.clock.Running() {
		return
	}
	now := keeper.options.Time.Now()
	keeper.clock.Pause(now)
	keeper.logger.Debug("interval paused", "mode", keeper.clock.Mode(), "remaining", keeper.clock.Sample(now).RemainingWhole)
	keeper.publishLocked(EventStateChange, now)
}

func (keeper *TimeKeeper) onFrame(seq uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if seq != keeper.frameSeq || keeper.stopped {
		return
	}
	keeper.frame = nil
	keeper.tickLocked()
}

func (keeper *TimeKeeper) tickLocked() {
	if !keeper.clock.Running() {
		return
	}
	now := keeper.options.Time.Now()
	sample := keeper.clock.Sample(now)
	keeper.renderLocked(sample)
	keeper.emitLocked(keeper.eventLocked(EventTick, sample, now))
	if sample.Finished {
		keeper.completeLocked(now)
		return
	}
	keeper.scheduleFrameLocked()
}

func (keeper *TimeKeeper) completeLocked(now time.Time) {
	interval := keeper.config.LongBreakInterval
	pending := keeper.clock.Pending(interval)
	keeper.notifyLocked(pending.Completed, pending.LongBreak)
	completion := keeper.clock.Advance(interval)
	keeper.finishLocked(Completion{Completion: completion}, now)
}

func (keeper *TimeKeeper) finishLocked(completion Completion, now time.Time) {
	keeper.cancelFrameLocked()
	keeper.logger.Info("interval complete",
		"completed", completion.Completed,
		"next", completion.Next,
		"sessions", completion.SessionsCompleted,
		"skipped", completion.Skipped,
	)

	sample := keeper.clock.Sample(now)
	keeper.renderLocked(sample)
	event := keeper.eventLocked(EventComplete, sample, now)
	event.Completion = completion
	keeper.emitLocked(event)

	if !completion.Skipped && keeper.config.AutoStartFor(completion.Next) {
		keeper.scheduleAutoStartLocked()
	}
}

func (keeper *TimeKeeper) scheduleFrameLocked() {
	keeper.cancelFrameLocked()
	seq := keeper.frameSeq
	keeper.frame = keeper.options.Time.AfterFunc(keeper.options.FrameInterval, func() {
		keeper.onFrame(seq)
	})
}

func (keeper *TimeKeeper) cancelFrameLocked() {
	keeper.frameSeq++
	if keeper.frame != nil {
		keeper.frame.Stop()
		keeper.frame = nil
	}
}

func (keeper *TimeKeeper) scheduleAutoStartLocked() {
	keeper.cancelAutoStartLocked()
	seq := keeper.autoSeq
	keeper.autoStart = keeper.options.Time.AfterFunc(keeper.options.AutoStartDelay, func() {
		keeper.onAutoStart(seq)
	})
}

func (keeper *TimeKeeper) cancelAutoStartLocked() {
	keeper.autoSeq++
	if keeper.autoStart != nil {
		keeper.autoStart.Stop()
		keeper.autoStart = nil
	}
}

func (keeper *TimeKeeper) onAutoStart(seq uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if seq != keeper.autoSeq || keeper.stopped {
		return
	}
	keeper.autoStart = nil
	keeper.logger.Debug("auto-starting interval", "mode", keeper.clock.Mode())
	keeper.startLocked()
}

func (keeper *TimeKeeper) publishLocked(eventType EventType, now time.Time) {
	sample := keeper.clock.Sample(now)
	keeper.renderLocked(sample)
	keeper.emitLocked(keeper.eventLocked(eventType, sample, now))
}

func (keeper *TimeKeeper) eventLocked(eventType EventType, sample session.Sample, now time.Time) Event {
	return Event{
		Type:              eventType,
		Mode:              keeper.clock.Mode(),
		Running:           keeper.clock.Running(),
		Sample:            sample,
		TotalSeconds:      keeper.clock.TotalSeconds(),
		SessionsCompleted: keeper.clock.SessionsCompleted(),
		At:                now,
	}
}

func (keeper *TimeKeeper) renderLocked(sample session.Sample) {
	if keeper.renderer == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			keeper.logger.Error("renderer panicked", "panic", recovered)
		}
	}()
	keeper.renderer.Render(sample, keeper.clock.Mode(), keeper.clock.Running())
}

func (keeper *TimeKeeper) notifyLocked(mode session.Mode, isLongBreak bool) {
	if keeper.notifier == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			keeper.logger.Error("completion notifier panicked", "panic", recovered, "mode", mode)
		}
	}()
	keeper.notifier.Notify(mode, isLongBreak)
}

// emitLocked fans event out without blocking. Ticks and state changes are
// dropped for a lagging observer, but a completion evicts the oldest buffered
// non-completion event so that it is still delivered.
func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
			continue
		default:
		}
		if event.Type != EventComplete {
			continue
		}
		evictOldest(ch)
		select {
		case ch <- event:
		default:
			keeper.logger.Warn("observer backlog full of completions, dropping completion",
				"completed", event.Completion.Completed)
		}
	}
}

// evictOldest removes the oldest buffered tick, or failing that the oldest
// state change, keeping the order of everything else.
func evictOldest(ch chan Event) {
	buffered := make([]Event, 0, cap(ch))
	for drained := false; !drained; {
		select {
		case queued := <-ch:
			buffered = append(buffered, queued)
		default:
			drained = true
		}
	}

	victim := -1
	for _, eventType := range []EventType{EventTick, EventStateChange} {
		for i, queued := range buffered {
			if queued.Type == eventType {
				victim = i
				break
			}
		}
		if victim >= 0 {
			break
		}
	}

	for i, queued := range buffered {
		if i == victim {
			continue
		}
		select {
		case ch <- queued:
		default:
		}
	}
}
