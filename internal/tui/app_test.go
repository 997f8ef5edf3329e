package tui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/slimecount/internal/assets"
	"chosenoffset.com/slimecount/internal/clock"
	"chosenoffset.com/slimecount/internal/session"
	"chosenoffset.com/slimecount/internal/simulation"
)

var (
	bgColor  = tcell.NewRGBColor(10, 120, 10)
	boxColor = tcell.NewRGBColor(120, 80, 40)
	inColor  = tcell.NewRGBColor(0, 0, 255)
	outColor = tcell.NewRGBColor(200, 200, 200)
)

type alwaysEnter struct{}

func (alwaysEnter) Float64() float64 { return 0.9 }

type fixture struct {
	clk    *clock.Mock
	screen tcell.SimulationScreen
	app    *App
}

func newFixture(t *testing.T, loaded bool) *fixture {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 33)

	byName := map[string]tcell.Color{
		"background.jpg": bgColor,
		"box.png":        boxColor,
		"circle_in.png":  inColor,
		"circle_out.png": outColor,
	}
	load := func(path string) (tcell.Color, error) {
		if !loaded {
			return tcell.ColorDefault, assert.AnError
		}
		return byName[filepath.Base(path)], nil
	}
	colors := assets.NewLoader("res", assets.DefaultFiles(), load, zerolog.Nop())
	colors.Start()
	_ = colors.Wait()

	clk := clock.NewMock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s, err := session.NewController(session.Options{
		Clock:  clk,
		Rand:   alwaysEnter{},
		Assets: colors,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	app := New(screen, s, colors, simulation.DefaultDurations(), simulation.DefaultRoundConfig(), zerolog.Nop())
	return &fixture{clk: clk, screen: screen, app: app}
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func (f *fixture) frames(n int) {
	for range n {
		f.clk.Advance(20 * time.Millisecond)
		f.app.session.Update()
	}
}

func (f *fixture) background(x, y int) tcell.Color {
	_, _, style, _ := f.screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func (f *fixture) row(y int) string {
	var b strings.Builder
	w, _ := f.screen.Size()
	for x := 0; x < w; x++ {
		r, _, _, _ := f.screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestKeysCycleSelection(t *testing.T) {
	f := newFixture(t, true)
	assert.Equal(t, simulation.DefaultRoundConfig(), f.app.Selection())

	assert.True(t, f.app.HandleEvent(key('d')))
	assert.True(t, f.app.HandleEvent(key('t')))
	assert.Equal(t, simulation.Medium, f.app.Selection().Difficulty)
	assert.Equal(t, 30*time.Second, f.app.Selection().Duration)

	assert.False(t, f.app.HandleEvent(key('q')))
	assert.False(t, f.app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestStartWhileLoadingShowsAlert(t *testing.T) {
	f := newFixture(t, false)

	f.app.HandleEvent(key('s'))
	assert.NotEmpty(t, f.app.alert)
	assert.Equal(t, session.Idle, f.app.session.State())

	f.app.Draw()
	assert.Contains(t, f.row(16), "Assets are still loading")

	assert.True(t, f.app.HandleEvent(key('q')), "first key only dismisses the alert")
	assert.Empty(t, f.app.alert)
}

func TestDrawRegionAndSlimes(t *testing.T) {
	f := newFixture(t, true)
	f.app.HandleEvent(key('l')) // collapse the panel out of the way
	f.app.HandleEvent(key('s'))
	require.Equal(t, session.Running, f.app.session.State())

	// the first slime is on canvas but has not reached the fade area yet
	f.frames(60)
	f.app.Draw()

	assert.Equal(t, bgColor, f.background(5, 5))
	assert.Equal(t, boxColor, f.background(50, 15))
	assert.Equal(t, boxColor, f.background(40, 10))
	assert.Equal(t, bgColor, f.background(60, 20))

	var slimes int
	for y := 0; y < 30; y++ {
		for x := 0; x < 100; x++ {
			r, _, style, _ := f.screen.GetContent(x, y)
			if r == '●' || r == 'o' || r == '·' {
				fg, _, _ := style.Decompose()
				assert.Equal(t, inColor, fg)
				slimes++
			}
		}
	}
	assert.Positive(t, slimes)
	assert.Contains(t, f.row(30), "Time left:")
}

func TestRevealShowsAnswer(t *testing.T) {
	f := newFixture(t, true)
	f.app.HandleEvent(key('s'))
	f.frames(150)

	f.app.HandleEvent(key('r'))
	answer, ok := f.app.session.Answer()
	require.True(t, ok)
	f.app.Draw()
	assert.Contains(t, f.row(31), session.AnswerText(answer))

	f.app.HandleEvent(key('s'))
	assert.Empty(t, f.app.answer)
}

func TestMouseDragMovesLogPanel(t *testing.T) {
	f := newFixture(t, true)
	start := f.app.frame.Pos()
	assert.Equal(t, 56.0, start.X)

	f.app.HandleEvent(tcell.NewEventMouse(60, 0, tcell.Button1, tcell.ModNone))
	f.app.HandleEvent(tcell.NewEventMouse(30, 12, tcell.Button1, tcell.ModNone))
	f.app.HandleEvent(tcell.NewEventMouse(30, 12, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, 26.0, f.app.frame.Pos().X)
	assert.Equal(t, 12.0, f.app.frame.Pos().Y)
	assert.False(t, f.app.frame.Dragging())

	// hotspot is the last three header cells
	p := f.app.frame.Pos()
	f.app.HandleEvent(tcell.NewEventMouse(int(p.X)+panelWidth-1, int(p.Y), tcell.Button1, tcell.ModNone))
	assert.False(t, f.app.frame.Expanded())
}

func TestTokenRune(t *testing.T) {
	assert.Equal(t, '●', TokenRune(1))
	assert.Equal(t, 'o', TokenRune(0.5))
	assert.Equal(t, '·', TokenRune(0.1))
	assert.Equal(t, ' ', TokenRune(0))
}

func TestLoadColorAveragesOpaquePixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.Set(0, 0, color.RGBA{200, 0, 0, 255})
	img.Set(1, 0, color.RGBA{100, 0, 0, 255})
	// the two transparent pixels are ignored

	path := filepath.Join(t.TempDir(), "slime.png")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, img))
	require.NoError(t, out.Close())

	c, err := LoadColor(path)
	require.NoError(t, err)
	r, g, b := c.RGB()
	assert.Equal(t, int32(150), r)
	assert.Equal(t, int32(0), g)
	assert.Equal(t, int32(0), b)

	_, err = LoadColor(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
