package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Progression events
	EventCurrencyEarned    EventType = "currency_earned"
	EventCurrencySpent     EventType = "currency_spent"
	EventExperienceEarned  EventType = "experience_earned"
	EventItemPurchased     EventType = "item_purchased"
	EventItemEquipped      EventType = "item_equipped"
	EventItemUnequipped    EventType = "item_unequipped"
	EventSettingUpdated    EventType = "setting_updated"
	EventNicknameChanged   EventType = "nickname_changed"
	EventDailyBonusGranted EventType = "daily_bonus_granted"
	EventProfileReset      EventType = "profile_reset"

	// Game events
	EventGameStarted  EventType = "game_started"
	EventGameFinished EventType = "game_finished"

	// Arena events
	EventRoomJoined  EventType = "room_joined"
	EventChatMessage EventType = "chat_message"
)

// Event is the base structure for all core events. Observers receive it
// synchronously after the mutation it describes has been applied.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   any // Type-specific data
}

// CurrencyPayload contains data for currency earned/spent events
type CurrencyPayload struct {
	Amount  int
	Balance int
}

// ExperiencePayload contains data for experience earned events
type ExperiencePayload struct {
	Amount     int
	Experience int
	Level      int
}

// ItemPayload contains data for purchase/equip/unequip events
type ItemPayload struct {
	ItemID ItemID
	Slot   SlotType
	Price  int // purchase only
}

// SettingPayload contains data for setting updated events
type SettingPayload struct {
	Key      string
	Settings Settings
}

// NicknamePayload contains data for nickname changed events
type NicknamePayload struct {
	Nickname string
}

// DailyBonusPayload contains data for daily bonus events
type DailyBonusPayload struct {
	Granted int
	Streak  int
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	Result            GameResult
	CurrencyAwarded   int
	ExperienceAwarded int
}

// ChatPayload contains data for chat message events
type ChatPayload struct {
	Room RoomCode
	Line ChatLine
}
