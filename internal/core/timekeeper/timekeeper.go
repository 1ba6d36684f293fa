package timekeeper

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"timeflo/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// IdleConfig controls pausing a running task while the user is away.
type IdleConfig struct {
	Enabled       bool
	After         time.Duration
	CheckInterval time.Duration
}

// Config contains runtime options for Keeper.
type Config struct {
	TickInterval time.Duration
	SkipPolicy   SkipPolicy
	Idle         IdleConfig
	// Now must return readings with a monotonic component; time.Now does.
	Now    func() time.Time
	Logger *slog.Logger
}

// Keeper hosts an Engine: it drives ticks from a ticker, serializes user
// commands and fans updates out to subscribers.
type Keeper struct {
	mu            sync.Mutex
	engine        *Engine
	options       Config
	idleChecker   IdleChecker
	lastTick      time.Time
	lastIdleCheck time.Time
	subscribers   []chan Update
	stopCh        chan struct{}
	running       bool
}

// New creates a Keeper on a fresh task interval.
func New(config model.IntervalConfig, options Config) (*Keeper, error) {
	engine, err := NewEngine(config, options.SkipPolicy)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	options.Idle = normalizeIdle(options.Idle)

	return &Keeper{
		engine:  engine,
		options: options,
	}, nil
}

// SetIdleChecker injects an idle checker.
func (keeper *Keeper) SetIdleChecker(checker IdleChecker) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.idleChecker = checker
}

// SetIdleConfig replaces the idle pause settings.
func (keeper *Keeper) SetIdleConfig(idle IdleConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.options.Idle = normalizeIdle(idle)
	keeper.lastIdleCheck = time.Time{}
}

// SetSkipPolicy changes how Skip treats the short break counter.
func (keeper *Keeper) SetSkipPolicy(policy SkipPolicy) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.engine.SetSkipPolicy(policy)
}

// Subscribe registers a new observer channel.
func (keeper *Keeper) Subscribe(buffer int) <-chan Update {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Update, buffer)
	keeper.mu.Lock()
	keeper.subscribers = append(keeper.subscribers, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (keeper *Keeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.running {
		return
	}
	keeper.running = true
	keeper.stopCh = make(chan struct{})
	keeper.lastTick = keeper.options.Now()
	keeper.lastIdleCheck = time.Time{}
	keeper.publishLocked(keeper.lastTick, nil)

	go keeper.run(keeper.stopCh, keeper.options.TickInterval)
}

// Stop terminates the ticking loop and closes observers.
func (keeper *Keeper) Stop() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	close(keeper.stopCh)
	keeper.running = false
	subscribers := keeper.subscribers
	keeper.subscribers = nil
	keeper.mu.Unlock()

	for _, ch := range subscribers {
		close(ch)
	}
}

// Pause freezes the timer.
func (keeper *Keeper) Pause() {
	keeper.command(func(engine *Engine) []Event {
		engine.Pause()
		return nil
	})
}

// Resume unfreezes the timer.
func (keeper *Keeper) Resume() {
	keeper.command(func(engine *Engine) []Event {
		engine.Resume()
		return nil
	})
}

// TogglePause pauses a running interval or resumes a paused one.
func (keeper *Keeper) TogglePause() {
	keeper.command(func(engine *Engine) []Event {
		if engine.Snapshot().Mode == ModePaused {
			engine.Resume()
		} else {
			engine.Pause()
		}
		return nil
	})
}

// Acknowledge starts the next interval after a completion.
func (keeper *Keeper) Acknowledge() {
	keeper.command((*Engine).Acknowledge)
}

// Skip ends the current interval and starts the next one.
func (keeper *Keeper) Skip() {
	keeper.command((*Engine).Skip)
}

// Cancel restarts the cycle from a fresh task interval.
func (keeper *Keeper) Cancel() {
	keeper.command((*Engine).Cancel)
}

// SetConfig replaces the interval configuration. An invalid config is
// rejected and the previous one stays in effect.
func (keeper *Keeper) SetConfig(config model.IntervalConfig) error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if err := keeper.engine.SetConfig(config); err != nil {
		return err
	}
	keeper.publishLocked(keeper.options.Now(), nil)
	return nil
}

// Config returns the active interval configuration.
func (keeper *Keeper) Config() model.IntervalConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.engine.Config()
}

// Snapshot returns the current timer state.
func (keeper *Keeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.engine.Snapshot()
}

func (keeper *Keeper) command(apply func(*Engine) []Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	now := keeper.options.Now()
	// Settle the interval in progress before the command changes it, so time
	// since the last tick is charged to the interval it elapsed in.
	if keeper.running && keeper.engine.Snapshot().Mode == ModeRunning {
		if events := keeper.engine.Tick(now.Sub(keeper.lastTick)); len(events) > 0 {
			keeper.publishLocked(now, events)
		}
	}
	keeper.lastTick = now
	keeper.publishLocked(now, apply(keeper.engine))
}

func (keeper *Keeper) run(stopCh <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			keeper.tick(keeper.options.Now())
		}
	}
}

func (keeper *Keeper) tick(now time.Time) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return
	}

	elapsed := now.Sub(keeper.lastTick)
	keeper.lastTick = now

	snapshot := keeper.engine.Snapshot()
	if snapshot.Mode != ModeRunning {
		return
	}
	if snapshot.Kind == model.KindTask && keeper.pauseIfIdleLocked(now) {
		return
	}
	keeper.publishLocked(now, keeper.engine.Tick(elapsed))
}

func (keeper *Keeper) pauseIfIdleLocked(now time.Time) bool {
	idle := keeper.options.Idle
	if !idle.Enabled || keeper.idleChecker == nil {
		return false
	}
	if !keeper.lastIdleCheck.IsZero() && now.Sub(keeper.lastIdleCheck) < idle.CheckInterval {
		return false
	}
	keeper.lastIdleCheck = now

	idleDuration, err := keeper.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			keeper.options.Idle.Enabled = false
		}
		keeper.options.Logger.Warn("idle check failed", "error", err)
		keeper.emitLocked(Update{
			Type:     UpdateIdleError,
			Snapshot: keeper.engine.Snapshot(),
			Message:  err.Error(),
			At:       now,
		})
		return false
	}
	if idleDuration < idle.After {
		return false
	}

	keeper.engine.Pause()
	keeper.emitLocked(Update{
		Type:     UpdateIdlePause,
		Snapshot: keeper.engine.Snapshot(),
		Message:  fmt.Sprintf("paused after %s idle", idleDuration.Round(time.Second)),
		At:       now,
	})
	return true
}

func (keeper *Keeper) publishLocked(now time.Time, events []Event) {
	snapshot := keeper.engine.Snapshot()
	if len(events) == 0 {
		keeper.emitLocked(Update{Type: UpdateProgress, Snapshot: snapshot, At: now})
		return
	}
	for _, event := range events {
		keeper.options.Logger.Debug("interval event", "type", string(event.Type), "kind", event.Kind.String())
		keeper.emitLocked(Update{Type: UpdateEvent, Event: event, Snapshot: snapshot, At: now})
	}
}

func (keeper *Keeper) emitLocked(update Update) {
	for _, ch := range keeper.subscribers {
		select {
		case ch <- update:
		default:
			keeper.options.Logger.Warn("subscriber buffer full, update dropped", "type", string(update.Type))
		}
	}
}

func normalizeIdle(idle IdleConfig) IdleConfig {
	if idle.CheckInterval <= 0 {
		idle.CheckInterval = 5 * time.Second
	}
	if idle.After <= 0 {
		idle.After = 5 * time.Minute
	}
	return idle
}
