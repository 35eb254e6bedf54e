package games

import (
	"time"

	"github.com/megahubnet/portal/internal/model"
)

// Descriptor identifies a game variant and its fixed scheduling parameters
type Descriptor struct {
	ID          model.GameID
	Name        string
	Icon        string
	AccentColor string
	ScoreLabel  string
	// TickPeriod is the fixed scheduler interval for this variant
	TickPeriod time.Duration
}

// Game is the lifecycle contract every mini-game variant implements. The
// runner drives it: Setup once, then per tick a Terminal check, Tick, and
// Render, with HandleInput interleaved from the presentation layer.
type Game interface {
	Descriptor() Descriptor

	// Setup binds the game to its drawing surface and resets its state
	Setup(surface Surface)

	// Tick advances the simulation by one fixed interval
	Tick(dt time.Duration)

	// HandleInput processes one edge-triggered input event
	HandleInput(ev Input)

	// Terminal reports whether the run has ended
	Terminal() bool

	// Result returns the final score. Valid once Terminal is true.
	Result() model.GameResult

	// Render draws the current state onto the surface bound in Setup
	Render()
}

// Direction is a grid movement direction
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit movement for the direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Horizontal reports whether the direction moves along the x axis
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// InputKind discriminates input events
type InputKind int

const (
	// InputDirection is a movement key
	InputDirection InputKind = iota
	// InputRune is a typed printable character
	InputRune
	// InputBackspace deletes the last typed character
	InputBackspace
	// InputClick is a pointer press at surface coordinates
	InputClick
)

// Input is one input event delivered to the active game
type Input struct {
	Kind InputKind
	Dir  Direction
	Rune rune
	X, Y int
}

// Cues is the optional audio capability. The default implementation is a
// no-op so game code never checks for presence.
type Cues interface {
	Play(name string)
}

// Cue names games may request
const (
	CueCorrect = "correct"
	CueClick   = "click"
)

// NopCues discards all cue requests
type NopCues struct{}

func (NopCues) Play(name string) {}
