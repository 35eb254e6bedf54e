package arena

import (
	"context"
	"sync"
	"time"

	"github.com/megahubnet/portal/internal/dependencies/clock"
	"github.com/megahubnet/portal/internal/model"
)

// SimulatedConfig tunes the fake network's behavior
type SimulatedConfig struct {
	// ReplyDelay is how long the resident bot waits before answering a
	// chat line
	ReplyDelay time.Duration
	// BotName is the author attached to simulated replies
	BotName string
}

// DefaultSimulatedConfig returns the stock simulation settings
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		ReplyDelay: time.Second,
		BotName:    "NetBot_Beta",
	}
}

// Simulated is the client-side stand-in for a multiplayer transport:
// a static room list, canned rosters, and a bot that echoes replies after
// a one-shot timer. No bytes ever leave the process.
type Simulated struct {
	cfg   SimulatedConfig
	clock clock.Clock

	mu      sync.Mutex
	rooms   map[model.RoomCode]model.Room
	order   []model.RoomCode
	handler func(code model.RoomCode, line model.ChatLine)
}

// Ensure Simulated implements Transport
var _ Transport = (*Simulated)(nil)

// NewSimulated creates the simulated transport with the stock room list
func NewSimulated(cfg SimulatedConfig, clk clock.Clock) *Simulated {
	s := &Simulated{
		cfg:   cfg,
		clock: clk,
		rooms: make(map[model.RoomCode]model.Room),
	}
	for _, room := range []model.Room{
		{Code: "MH-402", Name: "Neural Typers", SlotCount: 8, Occupied: 4, Mode: "Public"},
		{Code: "MH-109", Name: "Grid Battles", SlotCount: 8, Occupied: 8, Mode: "Public"},
		{Code: "MH-882", Name: "Logic Loop", SlotCount: 8, Occupied: 1, Mode: "Quick"},
	} {
		s.rooms[room.Code] = room
		s.order = append(s.order, room.Code)
	}
	return s
}

func (s *Simulated) SetHandler(fn func(code model.RoomCode, line model.ChatLine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = fn
}

func (s *Simulated) Rooms(ctx context.Context) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Room, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.rooms[code])
	}
	return out, nil
}

func (s *Simulated) Join(ctx context.Context, code model.RoomCode) (model.Room, []string, error) {
	s.mu.Lock()
	room, ok := s.rooms[code]
	if !ok {
		// Ad-hoc private node, created on first join
		room = model.Room{
			Code:      code,
			Name:      "Private Node",
			SlotCount: 8,
			Occupied:  0,
			Mode:      "Private",
		}
		s.order = append(s.order, code)
	}
	room.Occupied++
	s.rooms[code] = room
	s.mu.Unlock()

	roster := []string{"You", "Stranger_42", s.cfg.BotName}

	s.deliver(code, model.ChatLine{
		Text:   "Connected to Node " + string(code),
		System: true,
		SentAt: s.clock.Now(),
	})

	return room, roster, nil
}

func (s *Simulated) Send(ctx context.Context, code model.RoomCode, line model.ChatLine) error {
	s.mu.Lock()
	_, known := s.rooms[code]
	s.mu.Unlock()
	if !known {
		return model.ErrRoomNotFound
	}

	// Bot response simulation: a one-shot timer standing in for network
	// latency, then a canned acknowledgement. The timer deliberately does
	// not watch ctx: the reply must still land after the caller (an HTTP
	// handler, typically) has returned.
	reply := "ACK."
	if len(line.Text) > 5 {
		reply = "Data packet received."
	}

	go func() {
		<-s.clock.After(s.cfg.ReplyDelay)
		s.deliver(code, model.ChatLine{
			Author: s.cfg.BotName,
			Text:   reply,
			SentAt: s.clock.Now(),
		})
	}()

	return nil
}

func (s *Simulated) deliver(code model.RoomCode, line model.ChatLine) {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler != nil {
		handler(code, line)
	}
}
