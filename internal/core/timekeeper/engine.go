package timekeeper

import (
	"fmt"
	"time"

	"timeflo/internal/core/model"
)

// SkipPolicy controls what Skip does with the short break counter.
type SkipPolicy string

const (
	// SkipPreserveCounter advances the counter exactly as an acknowledgement would.
	SkipPreserveCounter SkipPolicy = "preserve"
	// SkipResetCounter zeroes the counter after the skipped transition.
	SkipResetCounter SkipPolicy = "reset"
)

// Engine is the interval state machine. It is not safe for concurrent use;
// the owner must serialize ticks and commands.
type Engine struct {
	config      model.IntervalConfig
	skipPolicy  SkipPolicy
	kind        model.IntervalKind
	remaining   time.Duration
	mode        RunMode
	shortBreaks int
}

// NewEngine creates an Engine on a fresh, running task interval.
func NewEngine(config model.IntervalConfig, policy SkipPolicy) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if policy == "" {
		policy = SkipPreserveCounter
	}
	engine := &Engine{config: config, skipPolicy: policy}
	engine.reset()
	return engine, nil
}

// Tick advances a running interval by elapsed. Overshoot collapses into a
// single completion.
func (engine *Engine) Tick(elapsed time.Duration) []Event {
	if engine.mode != ModeRunning {
		return nil
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed < engine.remaining {
		engine.remaining -= elapsed
		return nil
	}
	return []Event{engine.complete()}
}

// Acknowledge starts the next interval after a completion.
func (engine *Engine) Acknowledge() []Event {
	if engine.mode != ModeAwaitingAck {
		return nil
	}
	return []Event{engine.advance()}
}

// Pause freezes a running interval.
func (engine *Engine) Pause() {
	if engine.mode == ModeRunning {
		engine.mode = ModePaused
	}
}

// Resume continues a paused interval.
func (engine *Engine) Resume() {
	if engine.mode == ModePaused {
		engine.mode = ModeRunning
	}
}

// Cancel discards the cycle and starts a fresh task interval.
func (engine *Engine) Cancel() []Event {
	engine.reset()
	return []Event{{Type: EventIntervalStarted, Kind: model.KindTask}}
}

// Skip completes the current interval and immediately starts the next one.
func (engine *Engine) Skip() []Event {
	events := make([]Event, 0, 2)
	if engine.mode != ModeAwaitingAck {
		events = append(events, engine.complete())
	}
	events = append(events, engine.advance())
	if engine.skipPolicy == SkipResetCounter {
		engine.shortBreaks = 0
	}
	return events
}

// SetConfig replaces the interval configuration. The kind and run mode are
// kept; remaining time and the counter are clamped to the new limits.
func (engine *Engine) SetConfig(config model.IntervalConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	engine.config = config
	if limit := config.Duration(engine.kind); engine.remaining > limit {
		engine.remaining = limit
	}
	if engine.shortBreaks > config.BreaksBeforeLong-1 {
		engine.shortBreaks = config.BreaksBeforeLong - 1
	}
	return nil
}

// SetSkipPolicy changes how Skip treats the short break counter.
func (engine *Engine) SetSkipPolicy(policy SkipPolicy) {
	if policy == "" {
		policy = SkipPreserveCounter
	}
	engine.skipPolicy = policy
}

// Config returns the active interval configuration.
func (engine *Engine) Config() model.IntervalConfig {
	return engine.config
}

// Snapshot returns the current state for rendering.
func (engine *Engine) Snapshot() Snapshot {
	return Snapshot{
		Kind:        engine.kind,
		Remaining:   engine.remaining,
		Duration:    engine.config.Duration(engine.kind),
		Mode:        engine.mode,
		ShortBreaks: engine.shortBreaks,
	}
}

func (engine *Engine) reset() {
	engine.kind = model.KindTask
	engine.remaining = engine.config.Task
	engine.mode = ModeRunning
	engine.shortBreaks = 0
}

func (engine *Engine) complete() Event {
	engine.remaining = 0
	engine.mode = ModeAwaitingAck
	return Event{Type: EventIntervalCompleted, Kind: engine.kind}
}

func (engine *Engine) advance() Event {
	next := engine.nextKind()
	switch engine.kind {
	case model.KindShortBreak:
		engine.shortBreaks++
	case model.KindLongBreak:
		engine.shortBreaks = 0
	}
	engine.kind = next
	engine.remaining = engine.config.Duration(next)
	engine.mode = ModeRunning
	return Event{Type: EventIntervalStarted, Kind: next}
}

func (engine *Engine) nextKind() model.IntervalKind {
	if engine.kind != model.KindTask {
		return model.KindTask
	}
	if engine.shortBreaks < engine.config.BreaksBeforeLong-1 {
		return model.KindShortBreak
	}
	return model.KindLongBreak
}

// FormatRemaining renders a duration as MM:SS, rounding partial seconds up so
// that the display only reads 00:00 once the interval is over.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
