// Package tui is the terminal frontend. It plays the same rounds as the window frontend, with
// slimes drawn as colored cells.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"chosenoffset.com/slimecount/internal/assets"
	"chosenoffset.com/slimecount/internal/core/geom"
	"chosenoffset.com/slimecount/internal/round"
	"chosenoffset.com/slimecount/internal/session"
	"chosenoffset.com/slimecount/internal/simulation"
	"chosenoffset.com/slimecount/internal/ui/logpanel"
)

// statusRows are reserved under the canvas for the countdown, selection and help lines.
const statusRows = 3

// Log panel size in cells.
const (
	panelWidth   = 44
	panelBody    = 8
	panelHotspot = 3
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// App is the terminal game.
type App struct {
	screen  tcell.Screen
	session *session.Controller
	colors  *assets.Loader[tcell.Color]
	logger  zerolog.Logger

	frame *logpanel.Frame

	difficulty int
	durations  []time.Duration
	duration   int

	answer    string
	alert     string
	mouseDown bool

	width, height int
}

// New creates the app on an initialized screen.
func New(screen tcell.Screen, s *session.Controller, colors *assets.Loader[tcell.Color],
	durations []time.Duration, initial simulation.RoundConfig, logger zerolog.Logger) *App {
	a := &App{
		screen:    screen,
		session:   s,
		colors:    colors,
		durations: durations,
		logger:    logger.With().Str("component", "tui").Logger(),
	}
	for i, d := range simulation.Difficulties {
		if d == initial.Difficulty {
			a.difficulty = i
		}
	}
	for i, d := range durations {
		if d == initial.Duration {
			a.duration = i
		}
	}

	a.width, a.height = screen.Size()
	a.frame = logpanel.NewFrame(
		geom.Point{X: float64(a.width - panelWidth), Y: 0},
		panelWidth, 1, panelBody, a.bounds(),
	)
	a.frame.SetHotspotWidth(panelHotspot)
	return a
}

func (a *App) bounds() geom.Rect {
	return geom.Rect{Width: float64(a.width), Height: float64(a.height)}
}

// Selection returns the round configuration currently selected.
func (a *App) Selection() simulation.RoundConfig {
	return simulation.RoundConfig{
		Difficulty: simulation.Difficulties[a.difficulty],
		Duration:   a.durations[a.duration],
	}
}

// Run polls events and draws frames until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			a.session.Close()
			return ctx.Err()

		case ev := <-events:
			if !a.HandleEvent(ev) {
				a.session.Close()
				return nil
			}

		case <-ticker.C:
			a.session.Update()
			a.Draw()
		}
	}
}

// HandleEvent applies one input event. It returns false when the player quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.screen.Sync()
		a.width, a.height = a.screen.Size()
		a.frame.SetBounds(a.bounds())
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.alert != "" {
		// any key dismisses the alert
		a.alert = ""
		return true
	}

	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'd':
		a.difficulty = (a.difficulty + 1) % len(simulation.Difficulties)
	case 't':
		a.duration = (a.duration + 1) % len(a.durations)
	case 'l':
		a.frame.Toggle()
	case 's':
		a.start()
	case 'r':
		a.answer = session.AnswerText(a.session.RevealAnswer())
	}
	return true
}

func (a *App) start() {
	err := a.session.Start(a.Selection())
	switch {
	case errors.Is(err, session.ErrAssetsNotLoaded):
		a.alert = "Assets are still loading, please wait a moment. (press any key)"
	case err != nil:
		a.logger.Error().Err(err).Msg("failed to start round")
		a.alert = err.Error()
	default:
		a.answer = ""
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := geom.Point{X: float64(x), Y: float64(y)}
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !a.mouseDown:
		a.frame.Press(p)
	case down:
		a.frame.Move(p)
	case a.mouseDown:
		a.frame.Release()
	}
	a.mouseDown = down
}

// canvasSize is the number of cells the canvas occupies.
func (a *App) canvasSize() (int, int) {
	return a.width, max(1, a.height-statusRows)
}

// cell maps a canvas point to a terminal cell.
func (a *App) cell(field round.Field, p geom.Point) (int, int) {
	cw, ch := a.canvasSize()
	x := int((p.X - field.Canvas.X) * float64(cw) / field.Canvas.Width)
	y := int((p.Y - field.Canvas.Y) * float64(ch) / field.Canvas.Height)
	return x, y
}

func (a *App) color(name string, fallback tcell.Color) tcell.Color {
	if c, ok := a.colors.Get(name); ok {
		return c
	}
	return fallback
}

// Draw renders a full frame.
func (a *App) Draw() {
	a.screen.Clear()
	field := a.session.Field()
	cw, ch := a.canvasSize()

	bg := tcell.StyleDefault.Background(a.color(assets.Background, tcell.ColorDarkGreen))
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			a.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	box := tcell.StyleDefault.Background(a.color(assets.Region, tcell.ColorSaddleBrown))
	x0, y0 := a.cell(field, geom.Point{X: field.Region.X, Y: field.Region.Y})
	x1, y1 := a.cell(field, field.Region.Max())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			a.screen.SetContent(x, y, ' ', nil, box)
		}
	}

	for _, t := range a.session.Tokens() {
		a.drawToken(field, t, bg, box, x0, y0, x1, y1)
	}

	a.drawLogPanel()
	a.drawStatus(ch)
	if a.alert != "" {
		a.drawAlert()
	}
	a.screen.Show()
}

func (a *App) drawToken(field round.Field, t round.Token, bg, box tcell.Style, x0, y0, x1, y1 int) {
	x, y := a.cell(field, t.Pos)
	cw, ch := a.canvasSize()
	if x < 0 || y < 0 || x >= cw || y >= ch {
		return
	}

	fg := a.color(assets.Entering, tcell.ColorBlue)
	if t.Direction == round.Exiting {
		fg = a.color(assets.Exiting, tcell.ColorSilver)
	}

	style := bg
	if x >= x0 && x < x1 && y >= y0 && y < y1 {
		style = box
	}

	r := TokenRune(t.Alpha)
	if r == ' ' {
		return
	}
	a.screen.SetContent(x, y, r, nil, style.Foreground(fg))
}

// TokenRune picks a glyph that approximates a slime's opacity.
func TokenRune(alpha float64) rune {
	switch {
	case alpha >= 0.66:
		return '●'
	case alpha >= 0.33:
		return 'o'
	case alpha > 0:
		return '·'
	default:
		return ' '
	}
}

func (a *App) drawLogPanel() {
	r := a.frame.Rect()
	x0, y0 := int(r.X), int(r.Y)
	w := int(r.Width)

	header := tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	a.fillRow(x0, y0, w, header)
	a.drawText(x0+1, y0, logpanel.HeaderText(a.frame.Expanded()), header)

	if !a.frame.Expanded() {
		return
	}

	body := a.frame.Body()
	rows := int(body.Height)
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	for i := 0; i < rows; i++ {
		a.fillRow(x0, int(body.Y)+i, w, base)
	}
	for i, e := range a.session.Log().Tail(rows) {
		c := logpanel.CategoryColor(e.Category)
		style := base.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		a.drawText(x0+1, int(body.Y)+i, clip(e.String(), w-2), style)
	}
}

func (a *App) drawStatus(top int) {
	style := tcell.StyleDefault
	sel := a.Selection()

	countdown := a.session.Countdown()
	if countdown == "" {
		countdown = "Press s to start"
	}
	a.drawText(0, top, countdown, style.Bold(true))

	line := fmt.Sprintf("Difficulty: %s   Duration: %ds", sel.Difficulty.Label(), int(sel.Duration.Seconds()))
	if !a.colors.Ready() {
		line += fmt.Sprintf("   Loading assets %d/%d", a.colors.Loaded(), a.colors.Total())
	}
	if a.answer != "" {
		line += "   " + a.answer
	}
	a.drawText(0, top+1, line, style)
	a.drawText(0, top+2, "[d] difficulty [t] duration [s] start [r] reveal [l] log [q] quit",
		style.Foreground(tcell.ColorGray))
}

func (a *App) drawAlert() {
	w := len(a.alert) + 4
	x0 := max(0, (a.width-w)/2)
	y0 := max(0, a.height/2-1)
	style := tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite)
	for i := 0; i < 3; i++ {
		a.fillRow(x0, y0+i, w, style)
	}
	a.drawText(x0+2, y0+1, a.alert, style)
}

func (a *App) fillRow(x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		a.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

func (a *App) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
