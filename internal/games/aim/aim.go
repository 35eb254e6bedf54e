package aim

import (
	"time"

	"github.com/megahubnet/portal/internal/dependencies/random"
	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/model"
)

const (
	// RoundTicks is the number of one-second ticks in a round
	RoundTicks = 30
	// HitRadius is the maximum distance from the target center that still
	// counts as a hit
	HitRadius = 2

	fieldWidth  = 40
	fieldHeight = 20
	margin      = 2
	tickPeriod  = time.Second
)

// Game is the aim trainer: click targets before the 30 second round ends.
// Each hit relocates the target to a random position inside the field
// margins.
type Game struct {
	random  random.Random
	cues    games.Cues
	surface games.Surface

	targetX int
	targetY int
	hits    int
	ticks   int
}

var _ games.Game = (*Game)(nil)

func New(rnd random.Random, cues games.Cues) *Game {
	if cues == nil {
		cues = games.NopCues{}
	}
	return &Game{random: rnd, cues: cues}
}

func (g *Game) Descriptor() games.Descriptor {
	return games.Descriptor{
		ID:          model.GameAim,
		Name:        "Aim Trainer",
		Icon:        "🎯",
		AccentColor: "#f97316",
		ScoreLabel:  "HITS",
		TickPeriod:  tickPeriod,
	}
}

func (g *Game) Setup(surface games.Surface) {
	g.surface = surface
	g.hits = 0
	g.ticks = 0
	g.relocate()
}

func (g *Game) HandleInput(ev games.Input) {
	if ev.Kind != games.InputClick || g.Terminal() {
		return
	}
	dx := ev.X - g.targetX
	dy := ev.Y - g.targetY
	if dx*dx+dy*dy <= HitRadius*HitRadius {
		g.hits++
		g.cues.Play(games.CueClick)
		g.relocate()
	}
}

func (g *Game) Tick(dt time.Duration) {
	if g.ticks < RoundTicks {
		g.ticks++
	}
}

func (g *Game) Terminal() bool {
	return g.ticks >= RoundTicks
}

func (g *Game) Result() model.GameResult {
	return model.GameResult{
		GameID:     model.GameAim,
		Score:      g.hits,
		ScoreLabel: "HITS",
	}
}

// Remaining reports seconds left in the round
func (g *Game) Remaining() int {
	return RoundTicks - g.ticks
}

// Target returns the current target center
func (g *Game) Target() (int, int) {
	return g.targetX, g.targetY
}

func (g *Game) Render() {
	if g.surface == nil {
		return
	}
	g.surface.Clear()
	g.surface.Set(g.targetX, g.targetY, games.Cell{Ch: '◎', Color: "#f97316"})
}

func (g *Game) relocate() {
	w, h := fieldWidth, fieldHeight
	if g.surface != nil {
		if sw, sh := g.surface.Size(); sw > 2*margin && sh > 2*margin {
			w, h = sw, sh
		}
	}
	g.targetX = margin + g.random.Intn(w-2*margin)
	g.targetY = margin + g.random.Intn(h-2*margin)
}
