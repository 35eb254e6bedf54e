package model

import "time"

// RoomCode identifies an arena room
type RoomCode string

// Room describes an arena node as reported by the transport.
// The core trusts only its structural shape.
type Room struct {
	Code      RoomCode
	Name      string
	SlotCount int
	Occupied  int
	Mode      string
}

// ChatLine is a single chat message within a room. The core validates
// nothing beyond non-empty text.
type ChatLine struct {
	Author string
	Text   string
	System bool
	SentAt time.Time
}
