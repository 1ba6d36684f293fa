// Package attention blinks a widget while the timer waits for the user.
package attention

import (
	"context"
	"sync"
	"time"
)

// Config contains blink timing values.
type Config struct {
	On  time.Duration
	Off time.Duration
}

// DefaultConfig returns a calm one-second blink.
func DefaultConfig() Config {
	return Config{
		On:  600 * time.Millisecond,
		Off: 400 * time.Millisecond,
	}
}

// Blinker alternates a highlight flag until stopped.
type Blinker struct {
	mu        sync.Mutex
	config    Config
	highlight func(bool)
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a blinker calling highlight with the current phase.
func New(config Config, highlight func(bool)) *Blinker {
	if config.On <= 0 || config.Off <= 0 {
		config = DefaultConfig()
	}
	return &Blinker{config: config, highlight: highlight}
}

// Start begins blinking. Calling Start while active is a no-op.
func (blinker *Blinker) Start(parent context.Context) {
	blinker.mu.Lock()
	defer blinker.mu.Unlock()
	if blinker.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(parent)
	blinker.cancel = cancel
	blinker.done = make(chan struct{})
	go blinker.run(runCtx, blinker.done)
}

// Stop ends blinking and waits until the highlight is cleared.
func (blinker *Blinker) Stop() {
	blinker.mu.Lock()
	cancel, done := blinker.cancel, blinker.done
	blinker.cancel = nil
	blinker.done = nil
	blinker.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Active reports whether the blinker is running.
func (blinker *Blinker) Active() bool {
	blinker.mu.Lock()
	defer blinker.mu.Unlock()
	return blinker.cancel != nil
}

func (blinker *Blinker) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	defer blinker.highlight(false)
	for {
		blinker.highlight(true)
		if !sleepWithContext(ctx, blinker.config.On) {
			return
		}
		blinker.highlight(false)
		if !sleepWithContext(ctx, blinker.config.Off) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
