package memory

import (
	"time"

	"github.com/megahubnet/portal/internal/dependencies/random"
	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/model"
)

const (
	// GridSize is the board edge length; the board holds GridSize*GridSize/2
	// symbol pairs
	GridSize = 4
	// MatchScore is awarded per matched pair
	MatchScore = 10
	// MismatchPenalty is deducted per failed pair reveal
	MismatchPenalty = 2

	tickPeriod = 500 * time.Millisecond
)

var symbols = []rune{'◆', '●', '▲', '■', '★', '♦', '♠', '♥'}

type card struct {
	symbol  rune
	faceUp  bool
	matched bool
}

// Game is the pair-matching variant. Clicks flip cards face up; a second
// non-matching flip stays visible until the next tick, then both cards flip
// back. The run ends when every pair is matched.
type Game struct {
	random  random.Random
	cues    games.Cues
	surface games.Surface

	cards       []card
	first       int
	pendingHide [2]int
	hidePending bool
	matchedPair int
	mismatches  int
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
		ID:          model.GameMemory,
		Name:        "Logic Loop",
		Icon:        "🧠",
		AccentColor: "#34d399",
		ScoreLabel:  "SCORE",
		TickPeriod:  tickPeriod,
	}
}

func (g *Game) Setup(surface games.Surface) {
	g.surface = surface
	g.cards = make([]card, GridSize*GridSize)
	for i := range g.cards {
		g.cards[i] = card{symbol: symbols[i/2]}
	}
	g.random.Shuffle(len(g.cards), func(i, j int) {
		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	})
	g.first = -1
	g.hidePending = false
	g.matchedPair = 0
	g.mismatches = 0
}

func (g *Game) HandleInput(ev games.Input) {
	if ev.Kind != games.InputClick || g.hidePending || g.Terminal() {
		return
	}
	if ev.X < 0 || ev.X >= GridSize || ev.Y < 0 || ev.Y >= GridSize {
		return
	}
	idx := ev.Y*GridSize + ev.X
	c := &g.cards[idx]
	if c.faceUp || c.matched {
		return
	}
	c.faceUp = true

	if g.first < 0 {
		g.first = idx
		return
	}

	other := &g.cards[g.first]
	if other.symbol == c.symbol {
		c.matched = true
		other.matched = true
		g.matchedPair++
		g.cues.Play(games.CueCorrect)
	} else {
		g.pendingHide = [2]int{g.first, idx}
		g.hidePending = true
		g.mismatches++
	}
	g.first = -1
}

// Tick flips mismatched pairs back down, giving the player one beat to
// memorize them
func (g *Game) Tick(dt time.Duration) {
	if !g.hidePending {
		return
	}
	for _, idx := range g.pendingHide {
		g.cards[idx].faceUp = false
	}
	g.hidePending = false
}

func (g *Game) Terminal() bool {
	return g.matchedPair == len(g.cards)/2
}

func (g *Game) Result() model.GameResult {
	score := g.matchedPair*MatchScore - g.mismatches*MismatchPenalty
	if score < 0 {
		score = 0
	}
	return model.GameResult{
		GameID:     model.GameMemory,
		Score:      score,
		ScoreLabel: "SCORE",
	}
}

// MatchedPairs reports how many pairs have been found
func (g *Game) MatchedPairs() int {
	return g.matchedPair
}

func (g *Game) Render() {
	if g.surface == nil {
		return
	}
	g.surface.Clear()
	for i, c := range g.cards {
		x, y := i%GridSize, i/GridSize
		switch {
		case c.matched:
			g.surface.Set(x, y, games.Cell{Ch: c.symbol, Color: "#34d399"})
		case c.faceUp:
			g.surface.Set(x, y, games.Cell{Ch: c.symbol, Color: "#facc15"})
		default:
			g.surface.Set(x, y, games.Cell{Ch: '▢', Color: "#6b7280"})
		}
	}
}
