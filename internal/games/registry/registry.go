package registry

import (
	"fmt"

	"github.com/megahubnet/portal/internal/dependencies/clock"
	"github.com/megahubnet/portal/internal/dependencies/random"
	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/games/aim"
	"github.com/megahubnet/portal/internal/games/memory"
	"github.com/megahubnet/portal/internal/games/snake"
	"github.com/megahubnet/portal/internal/games/typing"
	"github.com/megahubnet/portal/internal/model"
)

// Deps carries the shared dependencies game variants draw from
type Deps struct {
	Clock  clock.Clock
	Random random.Random
	Cues   games.Cues
}

// New constructs a fresh instance of the named game
func New(id model.GameID, deps Deps) (games.Game, error) {
	switch id {
	case model.GameSnake:
		return snake.New(deps.Random, deps.Cues), nil
	case model.GameTyping:
		return typing.New(deps.Clock), nil
	case model.GameAim:
		return aim.New(deps.Random, deps.Cues), nil
	case model.GameMemory:
		return memory.New(deps.Random, deps.Cues), nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownGame, id)
	}
}

// FrameSize returns the drawing surface dimensions for the named game
func FrameSize(id model.GameID) (w, h int) {
	switch id {
	case model.GameSnake:
		return snake.GridWidth, snake.GridHeight
	case model.GameTyping:
		return 60, 8
	case model.GameMemory:
		return memory.GridSize, memory.GridSize
	default:
		return 40, 20
	}
}

// List returns the descriptors of every registered game in display order
func List(deps Deps) []games.Descriptor {
	ids := []model.GameID{model.GameSnake, model.GameTyping, model.GameAim, model.GameMemory}
	out := make([]games.Descriptor, 0, len(ids))
	for _, id := range ids {
		g, err := New(id, deps)
		if err != nil {
			continue
		}
		out = append(out, g.Descriptor())
	}
	return out
}
