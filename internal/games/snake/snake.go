package snake

import (
	"time"

	"github.com/megahubnet/portal/internal/dependencies/random"
	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/model"
)

const (
	// GridWidth and GridHeight fix the playfield size
	GridWidth  = 20
	GridHeight = 20
	// FoodScore is awarded per food cell consumed
	FoodScore = 10
	// TickPeriod is the fixed movement interval
	TickPeriod = 100 * time.Millisecond
)

type point struct {
	x, y int
}

// Game is the grid snake variant. The body is head-first; each tick moves
// the head one cell in the current direction. Leaving the grid or crossing
// the trailing body ends the run; reaching the food cell grows the body,
// scores, and relocates the food to a random free cell.
type Game struct {
	random  random.Random
	cues    games.Cues
	surface games.Surface

	body  []point
	dir   games.Direction
	food  point
	score int
	over  bool
}

// Ensure Game implements the lifecycle contract
var _ games.Game = (*Game)(nil)

// New creates the snake variant
func New(rnd random.Random, cues games.Cues) *Game {
	if cues == nil {
		cues = games.NopCues{}
	}
	return &Game{
		random: rnd,
		cues:   cues,
	}
}

func (g *Game) Descriptor() games.Descriptor {
	return games.Descriptor{
		ID:          model.GameSnake,
		Name:        "Legacy Snake",
		Icon:        "🐍",
		AccentColor: "#22d3ee",
		ScoreLabel:  "SCORE",
		TickPeriod:  TickPeriod,
	}
}

func (g *Game) Setup(surface games.Surface) {
	g.surface = surface
	g.body = []point{{x: 10, y: 10}}
	g.dir = games.DirRight
	g.food = point{x: 5, y: 5}
	g.score = 0
	g.over = false
}

// HandleInput accepts a direction change unless it would reverse the
// current movement axis; illegal reversals are ignored.
func (g *Game) HandleInput(ev games.Input) {
	if ev.Kind != games.InputDirection {
		return
	}
	if ev.Dir.Horizontal() == g.dir.Horizontal() {
		return
	}
	g.dir = ev.Dir
}

func (g *Game) Tick(dt time.Duration) {
	if g.over {
		return
	}

	dx, dy := g.dir.Delta()
	head := point{x: g.body[0].x + dx, y: g.body[0].y + dy}

	if head.x < 0 || head.x >= GridWidth || head.y < 0 || head.y >= GridHeight || g.hits(head) {
		g.over = true
		return
	}

	g.body = append([]point{head}, g.body...)
	if head == g.food {
		g.score += FoodScore
		g.relocateFood()
		g.cues.Play(games.CueCorrect)
	} else {
		g.body = g.body[:len(g.body)-1]
	}
}

func (g *Game) Terminal() bool {
	return g.over
}

func (g *Game) Result() model.GameResult {
	return model.GameResult{
		GameID:     model.GameSnake,
		Score:      g.score,
		ScoreLabel: "SCORE",
	}
}

func (g *Game) Render() {
	if g.surface == nil {
		return
	}
	g.surface.Clear()
	for _, p := range g.body {
		g.surface.Set(p.x, p.y, games.Cell{Ch: '█', Color: "#3b82f6"})
	}
	g.surface.Set(g.food.x, g.food.y, games.Cell{Ch: '●', Color: "#ef4444"})
}

// Score returns the current score for HUD display
func (g *Game) Score() int {
	return g.score
}

// Length returns the current body length
func (g *Game) Length() int {
	return len(g.body)
}

func (g *Game) hits(p point) bool {
	for _, b := range g.body {
		if b == p {
			return true
		}
	}
	return false
}

// relocateFood places the food on a uniformly random cell not occupied by
// the body
func (g *Game) relocateFood() {
	free := make([]point, 0, GridWidth*GridHeight-len(g.body))
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			p := point{x: x, y: y}
			if !g.hits(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.over = true
		return
	}
	g.food = free[g.random.Intn(len(free))]
}
