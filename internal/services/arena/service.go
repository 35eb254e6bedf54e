package arena

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/megahubnet/portal/internal/dependencies/clock"
	"github.com/megahubnet/portal/internal/dependencies/random"
	"github.com/megahubnet/portal/internal/model"
)

const (
	// RoomCodePrefix is prepended to generated room codes
	RoomCodePrefix = "MH-"
	// RoomCodeLength is the length of the generated suffix
	RoomCodeLength = 4
	// RoomCodeAlphabet avoids visually confusing characters
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Config holds arena timing settings
type Config struct {
	// MatchmakingDelay simulates the search before quick play joins a room
	MatchmakingDelay time.Duration
}

// DefaultConfig returns the stock arena settings
func DefaultConfig() Config {
	return Config{
		MatchmakingDelay: 1200 * time.Millisecond,
	}
}

// Service manages the player's presence in the simulated arena: room
// listing, joining, and chat. All traffic goes through the Transport seam.
type Service struct {
	transport Transport
	clock     clock.Clock
	random    random.Random
	cfg       Config
	logger    *slog.Logger

	mu      sync.Mutex
	current *model.Room
	roster  []string
	subs    []func(model.Event)
}

// NewService creates the arena service and wires itself as the transport's
// line handler
func NewService(transport Transport, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	s := &Service{
		transport: transport,
		clock:     clk,
		random:    rnd,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "arena")),
	}
	transport.SetHandler(s.onLine)
	return s
}

// Subscribe registers an observer for arena events (room joins, chat lines)
func (s *Service) Subscribe(fn func(model.Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// ListRooms returns the advertised rooms
func (s *Service) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.transport.Rooms(ctx)
}

// CurrentRoom returns the joined room, or nil
func (s *Service) CurrentRoom() *model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	room := *s.current
	return &room
}

// Roster returns the member names of the joined room
func (s *Service) Roster() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.roster))
	copy(out, s.roster)
	return out
}

// JoinRoom connects to the room with the given code
func (s *Service) JoinRoom(ctx context.Context, code model.RoomCode) (model.Room, error) {
	room, roster, err := s.transport.Join(ctx, code)
	if err != nil {
		return model.Room{}, err
	}

	s.mu.Lock()
	s.current = &room
	s.roster = roster
	s.mu.Unlock()

	s.logger.Info("joined arena room", slog.String("room", string(code)))
	s.emit(model.Event{
		Type:      model.EventRoomJoined,
		Timestamp: s.clock.Now(),
		Payload:   room,
	})
	return room, nil
}

// CreateRoom generates a fresh room code and joins it as host
func (s *Service) CreateRoom(ctx context.Context) (model.Room, error) {
	code := model.RoomCode(RoomCodePrefix + s.random.String(RoomCodeLength, RoomCodeAlphabet))
	return s.JoinRoom(ctx, code)
}

// QuickPlay waits out the simulated matchmaking delay, then joins a random
// advertised room
func (s *Service) QuickPlay(ctx context.Context) (model.Room, error) {
	rooms, err := s.transport.Rooms(ctx)
	if err != nil {
		return model.Room{}, err
	}
	if len(rooms) == 0 {
		return model.Room{}, model.ErrRoomNotFound
	}

	select {
	case <-ctx.Done():
		return model.Room{}, ctx.Err()
	case <-s.clock.After(s.cfg.MatchmakingDelay):
	}

	pick := rooms[s.random.Intn(len(rooms))]
	return s.JoinRoom(ctx, pick.Code)
}

// Leave disconnects from the current room
func (s *Service) Leave() {
	s.mu.Lock()
	s.current = nil
	s.roster = nil
	s.mu.Unlock()
}

// Send publishes a chat line authored by the player to the joined room.
// Text must be non-empty; nothing else about it is validated.
func (s *Service) Send(ctx context.Context, author, text string) error {
	if strings.TrimSpace(text) == "" {
		return model.ErrEmptyMessage
	}

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		return model.ErrNotInRoom
	}

	line := model.ChatLine{
		Author: author,
		Text:   text,
		SentAt: s.clock.Now(),
	}

	if err := s.transport.Send(ctx, current.Code, line); err != nil {
		return err
	}

	// Local echo: the player's own line is an arena event too
	s.emit(model.Event{
		Type:      model.EventChatMessage,
		Timestamp: line.SentAt,
		Payload:   model.ChatPayload{Room: current.Code, Line: line},
	})
	return nil
}

// onLine receives lines pushed by the transport
func (s *Service) onLine(code model.RoomCode, line model.ChatLine) {
	s.emit(model.Event{
		Type:      model.EventChatMessage,
		Timestamp: line.SentAt,
		Payload:   model.ChatPayload{Room: code, Line: line},
	})
}

func (s *Service) emit(ev model.Event) {
	s.mu.Lock()
	subs := make([]func(model.Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}
