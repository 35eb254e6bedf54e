package arena

import (
	"context"

	"github.com/megahubnet/portal/internal/model"
)

// Transport is the seam a real multiplayer backend would implement. The
// core never trusts it beyond the structural shape of rooms and chat
// lines, so the shipped simulation can be swapped out without touching
// the service.
type Transport interface {
	// Rooms lists the rooms currently advertised by the network
	Rooms(ctx context.Context) ([]model.Room, error)

	// Join connects to a room and returns its descriptor and the roster
	// of member names. Unknown codes create an ad-hoc private node.
	Join(ctx context.Context, code model.RoomCode) (model.Room, []string, error)

	// Send publishes a chat line to a joined room
	Send(ctx context.Context, code model.RoomCode, line model.ChatLine) error

	// SetHandler registers the sink for lines arriving from the room
	// (other members, system notices). One handler; set before use.
	SetHandler(fn func(code model.RoomCode, line model.ChatLine))
}
