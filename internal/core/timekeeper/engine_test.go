package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeflo/internal/core/model"
)

func classicConfig() model.IntervalConfig {
	return model.IntervalConfig{
		Task:             1500 * time.Second,
		ShortBreak:       300 * time.Second,
		LongBreak:        900 * time.Second,
		BreaksBeforeLong: 4,
	}
}

func newTestEngine(t *testing.T, config model.IntervalConfig) *Engine {
	t.Helper()
	engine, err := NewEngine(config, SkipPreserveCounter)
	require.NoError(t, err)
	return engine
}

func TestNewEngineStartsOnRunningTask(t *testing.T) {
	engine := newTestEngine(t, classicConfig())

	assert.Equal(t, Snapshot{
		Kind:        model.KindTask,
		Remaining:   1500 * time.Second,
		Duration:    1500 * time.Second,
		Mode:        ModeRunning,
		ShortBreaks: 0,
	}, engine.Snapshot())
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	config := classicConfig()
	config.BreaksBeforeLong = 0

	_, err := NewEngine(config, SkipPreserveCounter)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestTickCompletesTaskThenAcknowledgeStartsShortBreak(t *testing.T) {
	engine := newTestEngine(t, classicConfig())

	events := engine.Tick(1500 * time.Second)
	assert.Equal(t, []Event{{Type: EventIntervalCompleted, Kind: model.KindTask}}, events)
	snapshot := engine.Snapshot()
	assert.Equal(t, time.Duration(0), snapshot.Remaining)
	assert.Equal(t, ModeAwaitingAck, snapshot.Mode)

	events = engine.Acknowledge()
	assert.Equal(t, []Event{{Type: EventIntervalStarted, Kind: model.KindShortBreak}}, events)
	snapshot = engine.Snapshot()
	assert.Equal(t, model.KindShortBreak, snapshot.Kind)
	assert.Equal(t, 300*time.Second, snapshot.Remaining)
	assert.Equal(t, ModeRunning, snapshot.Mode)
	assert.Equal(t, 0, snapshot.ShortBreaks)
}

func TestTickOvershootEmitsSingleCompletion(t *testing.T) {
	for _, elapsed := range []time.Duration{1500 * time.Second, 1501 * time.Second, 48 * time.Hour} {
		engine := newTestEngine(t, classicConfig())

		events := engine.Tick(elapsed)
		assert.Len(t, events, 1, "elapsed %s", elapsed)
		assert.Equal(t, time.Duration(0), engine.Snapshot().Remaining)

		assert.Empty(t, engine.Tick(elapsed), "no further completions while awaiting acknowledgement")
		assert.Equal(t, ModeAwaitingAck, engine.Snapshot().Mode)
	}
}

func TestTickPartialAndNegativeElapsed(t *testing.T) {
	engine := newTestEngine(t, classicConfig())

	assert.Empty(t, engine.Tick(250*time.Millisecond))
	assert.Equal(t, 1500*time.Second-250*time.Millisecond, engine.Snapshot().Remaining)

	assert.Empty(t, engine.Tick(-time.Hour))
	assert.Equal(t, 1500*time.Second-250*time.Millisecond, engine.Snapshot().Remaining)
}

func TestPauseFreezesAndResumeContinues(t *testing.T) {
	engine := newTestEngine(t, classicConfig())
	engine.Tick(100 * time.Second)

	engine.Pause()
	for i := 0; i < 5; i++ {
		assert.Empty(t, engine.Tick(time.Hour))
	}
	assert.Equal(t, ModePaused, engine.Snapshot().Mode)
	assert.Equal(t, 1400*time.Second, engine.Snapshot().Remaining)

	engine.Resume()
	engine.Tick(40 * time.Second)
	assert.Equal(t, ModeRunning, engine.Snapshot().Mode)
	assert.Equal(t, 1360*time.Second, engine.Snapshot().Remaining)
}

func TestCommandsAreNoOpsInWrongMode(t *testing.T) {
	engine := newTestEngine(t, classicConfig())
	before := engine.Snapshot()

	assert.Empty(t, engine.Acknowledge())
	engine.Resume()
	assert.Equal(t, before, engine.Snapshot())

	engine.Pause()
	engine.Pause()
	assert.Equal(t, ModePaused, engine.Snapshot().Mode)
	assert.Empty(t, engine.Acknowledge())

	engine.Resume()
	engine.Tick(time.Hour)
	engine.Pause()
	engine.Resume()
	assert.Equal(t, ModeAwaitingAck, engine.Snapshot().Mode)
}

func TestSequencingPattern(t *testing.T) {
	for _, breaks := range []int{1, 2, 4, 7} {
		config := classicConfig()
		config.BreaksBeforeLong = breaks
		engine := newTestEngine(t, config)

		var expected []model.IntervalKind
		for cycle := 0; cycle < 3; cycle++ {
			for i := 0; i < breaks-1; i++ {
				expected = append(expected, model.KindTask, model.KindShortBreak)
			}
			expected = append(expected, model.KindTask, model.KindLongBreak)
		}

		visited := []model.IntervalKind{engine.Snapshot().Kind}
		for len(visited) < len(expected) {
			if len(visited)%2 == 0 {
				engine.Skip()
			} else {
				engine.Tick(time.Hour)
				engine.Acknowledge()
			}
			snapshot := engine.Snapshot()
			assert.Less(t, snapshot.ShortBreaks, breaks)
			visited = append(visited, snapshot.Kind)
		}
		assert.Equal(t, expected, visited, "breaks before long = %d", breaks)
	}
}

func TestFourthBreakIsLongAndResetsCounter(t *testing.T) {
	engine := newTestEngine(t, classicConfig())

	for i := 1; i <= 3; i++ {
		engine.Tick(1500 * time.Second)
		engine.Acknowledge()
		require.Equal(t, model.KindShortBreak, engine.Snapshot().Kind)
		engine.Tick(300 * time.Second)
		engine.Acknowledge()
		require.Equal(t, i, engine.Snapshot().ShortBreaks)
	}

	engine.Tick(1500 * time.Second)
	events := engine.Acknowledge()
	assert.Equal(t, []Event{{Type: EventIntervalStarted, Kind: model.KindLongBreak}}, events)
	assert.Equal(t, 900*time.Second, engine.Snapshot().Remaining)
	assert.Equal(t, 3, engine.Snapshot().ShortBreaks)

	engine.Tick(900 * time.Second)
	engine.Acknowledge()
	assert.Equal(t, model.KindTask, engine.Snapshot().Kind)
	assert.Equal(t, 0, engine.Snapshot().ShortBreaks)
}

func TestSkipRightAfterCreation(t *testing.T) {
	engine := newTestEngine(t, classicConfig())

	events := engine.Skip()
	assert.Equal(t, []Event{
		{Type: EventIntervalCompleted, Kind: model.KindTask},
		{Type: EventIntervalStarted, Kind: model.KindShortBreak},
	}, events)
	snapshot := engine.Snapshot()
	assert.Equal(t, 300*time.Second, snapshot.Remaining)
	assert.Equal(t, ModeRunning, snapshot.Mode)
}

func TestSkipWhilePausedStartsNextRunning(t *testing.T) {
	engine := newTestEngine(t, classicConfig())
	engine.Pause()

	events := engine.Skip()
	assert.Len(t, events, 2)
	assert.Equal(t, ModeRunning, engine.Snapshot().Mode)
}

func TestSkipWhileAwaitingDoesNotRepeatCompletion(t *testing.T) {
	engine := newTestEngine(t, classicConfig())
	engine.Tick(time.Hour)

	events := engine.Skip()
	assert.Equal(t, []Event{{Type: EventIntervalStarted, Kind: model.KindShortBreak}}, events)
}

func TestSkipResetPolicy(t *testing.T) {
	engine, err := NewEngine(classicConfig(), SkipResetCounter)
	require.NoError(t, err)

	engine.Skip()
	engine.Skip()
	assert.Equal(t, model.KindTask, engine.Snapshot().Kind)
	assert.Equal(t, 0, engine.Snapshot().ShortBreaks)

	engine.SetSkipPolicy(SkipPreserveCounter)
	engine.Skip()
	engine.Skip()
	assert.Equal(t, 1, engine.Snapshot().ShortBreaks)
}

func TestCancelFromAnyState(t *testing.T) {
	setups := map[string]func(*Engine){
		"running":  func(*Engine) {},
		"paused":   func(engine *Engine) { engine.Pause() },
		"awaiting": func(engine *Engine) { engine.Tick(time.Hour) },
		"long break": func(engine *Engine) {
			for i := 0; i < 7; i++ {
				engine.Skip()
			}
		},
		"short break paused": func(engine *Engine) {
			engine.Skip()
			engine.Pause()
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			engine := newTestEngine(t, classicConfig())
			setup(engine)

			events := engine.Cancel()
			assert.Equal(t, []Event{{Type: EventIntervalStarted, Kind: model.KindTask}}, events)
			assert.Equal(t, Snapshot{
				Kind:      model.KindTask,
				Remaining: 1500 * time.Second,
				Duration:  1500 * time.Second,
				Mode:      ModeRunning,
			}, engine.Snapshot())
		})
	}
}

func TestSetConfigRejectsInvalidAndKeepsState(t *testing.T) {
	engine := newTestEngine(t, classicConfig())
	engine.Tick(10 * time.Second)
	before := engine.Snapshot()

	bad := classicConfig()
	bad.ShortBreak = 0
	err := engine.SetConfig(bad)

	assert.ErrorIs(t, err, model.ErrInvalidConfig)
	assert.Equal(t, before, engine.Snapshot())
	assert.Equal(t, classicConfig(), engine.Config())
}

func TestSetConfigClampsRemaining(t *testing.T) {
	engine := newTestEngine(t, classicConfig())
	engine.Pause()

	shorter := classicConfig()
	shorter.Task = 600 * time.Second
	require.NoError(t, engine.SetConfig(shorter))
	assert.Equal(t, 600*time.Second, engine.Snapshot().Remaining)
	assert.Equal(t, ModePaused, engine.Snapshot().Mode)
	assert.Equal(t, model.KindTask, engine.Snapshot().Kind)

	longer := classicConfig()
	longer.Task = time.Hour
	require.NoError(t, engine.SetConfig(longer))
	assert.Equal(t, 600*time.Second, engine.Snapshot().Remaining)
	assert.Equal(t, time.Hour, engine.Snapshot().Duration)
}

func TestSetConfigKeepsAwaitingAtZero(t *testing.T) {
	engine := newTestEngine(t, classicConfig())
	engine.Tick(time.Hour)

	require.NoError(t, engine.SetConfig(model.DefaultIntervalConfig()))
	assert.Equal(t, time.Duration(0), engine.Snapshot().Remaining)
	assert.Equal(t, ModeAwaitingAck, engine.Snapshot().Mode)
}

func TestSetConfigClampsCounter(t *testing.T) {
	engine := newTestEngine(t, classicConfig())
	for i := 0; i < 6; i++ {
		engine.Skip()
	}
	require.Equal(t, 3, engine.Snapshot().ShortBreaks)

	fewer := classicConfig()
	fewer.BreaksBeforeLong = 2
	require.NoError(t, engine.SetConfig(fewer))
	assert.Equal(t, 1, engine.Snapshot().ShortBreaks)

	engine.Skip()
	assert.Equal(t, model.KindLongBreak, engine.Snapshot().Kind)
}

func TestSnapshotProgress(t *testing.T) {
	assert.Equal(t, 0.0, Snapshot{Remaining: 10 * time.Second, Duration: 10 * time.Second}.Progress())
	assert.Equal(t, 0.25, Snapshot{Remaining: 30 * time.Second, Duration: 40 * time.Second}.Progress())
	assert.Equal(t, 1.0, Snapshot{}.Progress())
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "00:00", FormatRemaining(0))
	assert.Equal(t, "00:00", FormatRemaining(-time.Second))
	assert.Equal(t, "12:34", FormatRemaining(754*time.Second))
	assert.Equal(t, "00:01", FormatRemaining(200*time.Millisecond))
	assert.Equal(t, "120:00", FormatRemaining(2*time.Hour))
}
