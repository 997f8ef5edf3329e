// Package session runs rounds of the counting game: it owns the round state, the timers that
// drive it, the event log and the background music.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"chosenoffset.com/slimecount/internal/audio"
	"chosenoffset.com/slimecount/internal/clock"
	"chosenoffset.com/slimecount/internal/eventlog"
	"chosenoffset.com/slimecount/internal/round"
	"chosenoffset.com/slimecount/internal/simulation"
)

// ErrAssetsNotLoaded is returned by Start while images are still loading.
var ErrAssetsNotLoaded = errors.New("assets are still loading, please wait a moment")

// State is the lifecycle stage of the controller.
type State int

const (
	Idle State = iota
	Running
	Ended
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "idle"
	}
}

// Readiness reports whether the assets a round draws with are available.
type Readiness interface {
	Ready() bool
}

type alwaysReady struct{}

func (alwaysReady) Ready() bool { return true }

// Options configures a Controller. Zero fields get defaults.
type Options struct {
	Clock        clock.Clock
	Rand         round.Rand
	Assets       Readiness
	Music        audio.Track
	Field        *round.Field
	FadeDuration time.Duration
	Logger       zerolog.Logger
}

// Controller owns one game session. All methods must be called from the frame goroutine.
type Controller struct {
	clock  clock.Clock
	sched  *clock.Scheduler
	rng    round.Rand
	assets Readiness
	music  audio.Track
	field  round.Field
	fade   time.Duration
	logger zerolog.Logger

	events *eventlog.Log

	scope     *clock.Scope
	fadeIn    *clock.Handle
	state     *round.State
	status    State
	cfg       simulation.RoundConfig
	deadline  Deadline
	countdown string
	answer    int
	revealed  bool

	occupancy atomic.Int64
	rounds    metric.Int64Counter
	spawns    metric.Int64Counter
	crossings metric.Int64Counter
	observer  metric.Registration
}

// NewController creates an idle controller.
func NewController(opts Options) (*Controller, error) {
	c := &Controller{
		clock:  opts.Clock,
		rng:    opts.Rand,
		assets: opts.Assets,
		music:  opts.Music,
		fade:   opts.FadeDuration,
		logger: opts.Logger.With().Str("component", "session").Logger(),
		cfg:    simulation.DefaultRoundConfig(),
	}
	if c.clock == nil {
		c.clock = clock.System{}
	}
	if c.rng == nil {
		seed := uint64(c.clock.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if c.assets == nil {
		c.assets = alwaysReady{}
	}
	if c.music == nil {
		c.music = &audio.Silent{}
	}
	if c.fade <= 0 {
		c.fade = audio.DefaultFadeDuration
	}
	if opts.Field != nil {
		c.field = *opts.Field
	} else {
		c.field = round.DefaultField()
	}

	c.sched = clock.NewScheduler(c.clock)
	c.events = eventlog.New(c.clock)
	c.state = round.NewState(c.field, c.clock.Now())

	if err := c.initMetrics(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) initMetrics() error {
	m := meter()

	var err error
	c.rounds, err = m.Int64Counter(
		"slimecount.rounds.started",
		metric.WithDescription("Rounds started"),
	)
	if err != nil {
		return fmt.Errorf("creating rounds counter: %w", err)
	}

	c.spawns, err = m.Int64Counter(
		"slimecount.slimes.spawned",
		metric.WithDescription("Slimes spawned by direction"),
	)
	if err != nil {
		return fmt.Errorf("creating spawn counter: %w", err)
	}

	c.crossings, err = m.Int64Counter(
		"slimecount.region.crossings",
		metric.WithDescription("Region boundary crossings by direction"),
	)
	if err != nil {
		return fmt.Errorf("creating crossing counter: %w", err)
	}

	gauge, err := m.Int64ObservableGauge(
		"slimecount.region.occupancy",
		metric.WithDescription("Slimes currently counted inside the region"),
	)
	if err != nil {
		return fmt.Errorf("creating occupancy gauge: %w", err)
	}
	c.observer, err = m.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(gauge, c.occupancy.Load())
			return nil
		},
		gauge,
	)
	if err != nil {
		return fmt.Errorf("registering occupancy callback: %w", err)
	}
	return nil
}

// Start begins a new round, discarding whatever the previous round left behind.
func (c *Controller) Start(cfg simulation.RoundConfig) error {
	if !c.assets.Ready() {
		c.logger.Warn().Msg("start refused, assets not loaded")
		return ErrAssetsNotLoaded
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid round config: %w", err)
	}

	if c.scope != nil {
		c.scope.Cancel()
	}
	scope := c.sched.NewScope()
	now := c.sched.Now()
	state := round.NewState(c.field, now)
	deadline := NewDeadline(now, cfg.Duration)
	spawner := round.NewSpawner(c.field, c.rng)

	c.scope = scope
	c.state = state
	c.cfg = cfg
	c.deadline = deadline
	c.events.Clear()
	c.answer, c.revealed = 0, false
	c.occupancy.Store(0)
	c.countdown = CountdownText(cfg.Duration)

	if err := c.music.Rewind(); err != nil {
		c.logger.Warn().Err(err).Msg("music not rewound")
	}
	c.fadeIn = audio.FadeIn(scope, c.music, c.fade)
	c.music.Play()

	var countdown, spawn, frame *clock.Handle
	scope.After(cfg.Duration, func(at time.Time) {
		countdown.Cancel()
		spawn.Cancel()
		c.end(scope, at)
	})
	countdown = scope.Every(simulation.CountdownResolution, func(at time.Time) {
		c.countdown = CountdownText(deadline.Remaining(at))
	})
	spawn = scope.Every(cfg.Difficulty.SpawnInterval(), func(at time.Time) {
		if deadline.Expired(at) {
			return
		}
		if t, ok := spawner.Attempt(state); ok {
			c.spawns.Add(context.Background(), 1,
				metric.WithAttributes(attribute.String("direction", t.Direction.String())))
		}
	})
	frame = scope.EachFrame(func(time.Time) {
		c.step(state)
		if c.status == Ended && state.Len() == 0 {
			frame.Cancel()
		}
	})

	c.status = Running
	c.rounds.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("difficulty", cfg.Difficulty.String())))
	c.logger.Info().
		Str("difficulty", cfg.Difficulty.String()).
		Dur("duration", cfg.Duration).
		Msg("round started")
	return nil
}

func (c *Controller) step(state *round.State) {
	for _, cr := range state.Step() {
		category, msg := eventlog.Enter, eventlog.EnterMessage(cr.Occupancy)
		if cr.Direction == round.Exiting {
			category, msg = eventlog.Exit, eventlog.ExitMessage(cr.Occupancy)
		}
		c.events.Append(msg, category)
		c.crossings.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("direction", cr.Direction.String())))
	}
	c.occupancy.Store(int64(state.Occupancy()))
}

func (c *Controller) end(scope *clock.Scope, at time.Time) {
	c.status = Ended
	c.countdown = TimeUpText
	c.events.Append("Round over", eventlog.Neutral)
	c.fadeIn.Cancel()
	audio.FadeOut(scope, c.music, c.fade, func(err error) {
		if err != nil {
			c.logger.Warn().Err(err).Msg("music not rewound")
		}
	})
	c.logger.Info().
		Int("occupancy", c.state.Occupancy()).
		Int("in_flight", c.state.Len()).
		Time("at", at).
		Msg("round ended")
}

// RevealAnswer records the current occupancy as the answer and returns it. Timers keep running.
func (c *Controller) RevealAnswer() int {
	c.answer = c.state.Occupancy()
	c.revealed = true
	c.logger.Debug().Int("answer", c.answer).Str("state", c.status.String()).Msg("answer revealed")
	return c.answer
}

// Answer returns the revealed answer, if any.
func (c *Controller) Answer() (int, bool) {
	return c.answer, c.revealed
}

// Occupancy returns the live occupancy count of the current round.
func (c *Controller) Occupancy() int {
	return c.state.Occupancy()
}

// Tokens returns the live slimes in draw order.
func (c *Controller) Tokens() []round.Token {
	return c.state.Tokens()
}

// Field returns the geometry rounds play on.
func (c *Controller) Field() round.Field {
	return c.field
}

// Countdown returns the countdown display text. It is empty before the first round.
func (c *Controller) Countdown() string {
	return c.countdown
}

// State returns the lifecycle stage.
func (c *Controller) State() State {
	return c.status
}

// Log returns the event log of the current round.
func (c *Controller) Log() *eventlog.Log {
	return c.events
}

// Config returns the configuration of the current or last round.
func (c *Controller) Config() simulation.RoundConfig {
	return c.cfg
}

// Deadline returns the deadline of the current or last round.
func (c *Controller) Deadline() Deadline {
	return c.deadline
}

// Update fires every task due at the clock's current time. Call it once per frame.
func (c *Controller) Update() {
	c.sched.Advance()
}

// Close stops the round's timers, pauses the music and detaches the occupancy gauge from the
// meter.
func (c *Controller) Close() {
	if c.scope != nil {
		c.scope.Cancel()
	}
	c.music.Pause()
	if c.observer != nil {
		if err := c.observer.Unregister(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to unregister occupancy callback")
		}
		c.observer = nil
	}
}
