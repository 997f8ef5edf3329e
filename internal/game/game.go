// Package game wires a session controller to the render abstraction: it turns input into
// session calls and draws the canvas, the slimes, the control bar and the log panel.
package game

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"chosenoffset.com/slimecount/internal/assets"
	"chosenoffset.com/slimecount/internal/core/geom"
	"chosenoffset.com/slimecount/internal/render"
	"chosenoffset.com/slimecount/internal/session"
	"chosenoffset.com/slimecount/internal/simulation"
	"chosenoffset.com/slimecount/internal/ui/controls"
	"chosenoffset.com/slimecount/internal/ui/logpanel"
)

// ControlsHeight is the height of the bar below the canvas.
const ControlsHeight = 120

// Log panel geometry.
const (
	panelWidth  = 340
	panelHeader = 24
	panelBody   = 220
)

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Renderer     render.Renderer
	InputMgr     render.InputManager

	Session  *session.Controller
	Images   *assets.Loader[render.Image]
	Controls *controls.Bar
	LogPanel *logpanel.Panel

	// UI state
	Messages  []Message
	lastState session.State

	logger zerolog.Logger
}

// New creates the game for a session. durations and initial fill the control bar.
func New(s *session.Controller, images *assets.Loader[render.Image], r render.Renderer, input render.InputManager,
	durations []time.Duration, initial simulation.RoundConfig, logger zerolog.Logger) *Game {
	field := s.Field()
	width := int(field.Canvas.Width)
	height := int(field.Canvas.Height) + ControlsHeight
	screen := geom.Rect{Width: float64(width), Height: float64(height)}
	bar := geom.Rect{Y: field.Canvas.Height, Width: field.Canvas.Width, Height: ControlsHeight}

	frame := logpanel.NewFrame(
		geom.Point{X: field.Canvas.Width - panelWidth - 10, Y: 10},
		panelWidth, panelHeader, panelBody, screen,
	)

	return &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		Renderer:     r,
		InputMgr:     input,
		Session:      s,
		Images:       images,
		Controls:     controls.NewBar(r, input, bar, screen, durations, initial),
		LogPanel:     logpanel.NewPanel(frame, r, input, s.Log()),
		logger:       logger.With().Str("component", "game").Logger(),
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0

	consumed := false
	if !g.Controls.AlertVisible() {
		consumed = g.LogPanel.Update()
	}

	switch g.Controls.Update(consumed) {
	case controls.Start:
		g.startRound()
	case controls.Reveal:
		n := g.Session.RevealAnswer()
		g.Controls.SetAnswer(session.AnswerText(n))
	case controls.Quit:
		g.Session.Close()
		return render.ErrQuit
	}

	g.Session.Update()
	g.Controls.SetCountdown(g.Session.Countdown())

	state := g.Session.State()
	if state == session.Ended && g.lastState == session.Running {
		g.ShowMessage(session.TimeUpText)
	}
	g.lastState = state

	g.updateMessages(dt)
	return nil
}

func (g *Game) startRound() {
	cfg := g.Controls.Selection()
	err := g.Session.Start(cfg)
	switch {
	case errors.Is(err, session.ErrAssetsNotLoaded):
		g.Controls.ShowAlert("Assets are still loading, please wait a moment.")
	case err != nil:
		g.logger.Error().Err(err).Msg("failed to start round")
		g.ShowMessage("Could not start the round")
	default:
		g.Controls.SetAnswer("")
		g.Messages = nil
	}
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
	g.logger.Debug().Str("message", text).Msg("message shown")
}
