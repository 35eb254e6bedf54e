package typing

import (
	"math"
	"time"

	"github.com/megahubnet/portal/internal/dependencies/clock"
	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/model"
)

// Passage is the fixed text operators transcribe
const Passage = "The megahub network operates on a protocol of extreme low latency and persistent state management. Operators are required to maintain a high WPM to successfully navigate the deeper layers of the grid."

const tickPeriod = 250 * time.Millisecond

// Game is the typing variant: transcribe the passage as fast as possible.
// The score is words per minute, computed over the wall time between the
// first keystroke and completion.
type Game struct {
	clock   clock.Clock
	surface games.Surface

	typed   []rune
	target  []rune
	started bool
	startAt time.Time
	wpm     int
	done    bool
}

var _ games.Game = (*Game)(nil)

func New(clk clock.Clock) *Game {
	return &Game{clock: clk}
}

func (g *Game) Descriptor() games.Descriptor {
	return games.Descriptor{
		ID:          model.GameTyping,
		Name:        "Neural Typer",
		Icon:        "⌨",
		AccentColor: "#a78bfa",
		ScoreLabel:  "WPM",
		TickPeriod:  tickPeriod,
	}
}

func (g *Game) Setup(surface games.Surface) {
	g.surface = surface
	g.typed = g.typed[:0]
	g.target = []rune(Passage)
	g.started = false
	g.wpm = 0
	g.done = false
}

func (g *Game) HandleInput(ev games.Input) {
	if g.done {
		return
	}
	switch ev.Kind {
	case games.InputRune:
		if !g.started {
			g.started = true
			g.startAt = g.clock.Now()
		}
		if len(g.typed) < len(g.target) {
			g.typed = append(g.typed, ev.Rune)
		}
		if g.complete() {
			g.finish()
		}
	case games.InputBackspace:
		if len(g.typed) > 0 {
			g.typed = g.typed[:len(g.typed)-1]
		}
	}
}

func (g *Game) Tick(dt time.Duration) {}

func (g *Game) Terminal() bool {
	return g.done
}

func (g *Game) Result() model.GameResult {
	return model.GameResult{
		GameID:     model.GameTyping,
		Score:      g.wpm,
		ScoreLabel: "WPM",
	}
}

// Typed returns the characters entered so far
func (g *Game) Typed() string {
	return string(g.typed)
}

// Progress reports typed and total rune counts
func (g *Game) Progress() (int, int) {
	return len(g.typed), len(g.target)
}

func (g *Game) Render() {
	if g.surface == nil {
		return
	}
	g.surface.Clear()
	w, h := g.surface.Size()
	if w == 0 || h == 0 {
		return
	}
	x, y := 0, 0
	for i, r := range g.target {
		color := "#6b7280"
		if i < len(g.typed) {
			if g.typed[i] == r {
				color = "#34d399"
			} else {
				color = "#ef4444"
			}
		}
		g.surface.Set(x, y, games.Cell{Ch: r, Color: color})
		x++
		if x >= w {
			x = 0
			y++
			if y >= h {
				return
			}
		}
	}
}

func (g *Game) complete() bool {
	if len(g.typed) != len(g.target) {
		return false
	}
	for i, r := range g.typed {
		if r != g.target[i] {
			return false
		}
	}
	return true
}

// finish computes words per minute with the standard 5-characters-per-word
// convention
func (g *Game) finish() {
	elapsed := g.clock.Now().Sub(g.startAt)
	if elapsed <= 0 {
		elapsed = time.Second
	}
	words := float64(len(g.target)) / 5.0
	g.wpm = int(math.Round(words / elapsed.Minutes()))
	g.done = true
}
