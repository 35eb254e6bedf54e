package response

import (
	"time"

	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/model"
)

// Settings represents profile settings in API responses
type Settings struct {
	Sound   bool   `json:"sound"`
	Volume  int    `json:"volume"`
	Theme   string `json:"theme"`
	Effects bool   `json:"effects"`
	Season  string `json:"season"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{
		Sound:   s.Sound,
		Volume:  s.Volume,
		Theme:   s.Theme,
		Effects: s.Effects,
		Season:  s.Season,
	}
}

// Profile represents the local profile in API responses
type Profile struct {
	Nickname      string            `json:"nickname"`
	Level         int               `json:"level"`
	Experience    int               `json:"experience"`
	Currency      int               `json:"currency"`
	Inventory     []string          `json:"inventory"`
	Equipped      map[string]string `json:"equipped"`
	Settings      Settings          `json:"settings"`
	LastLoginDate string            `json:"last_login_date,omitempty"`
	LoginStreak   int               `json:"login_streak"`
}

// ProfileFromModel converts a model.Profile to a response Profile
func ProfileFromModel(p *model.Profile, levelDivisor int) Profile {
	inventory := make([]string, 0, len(p.Inventory))
	for _, id := range p.Inventory {
		inventory = append(inventory, string(id))
	}
	equipped := make(map[string]string, len(p.Equipped))
	for slot, id := range p.Equipped {
		equipped[string(slot)] = string(id)
	}
	return Profile{
		Nickname:      p.Nickname,
		Level:         p.Level(levelDivisor),
		Experience:    p.Experience,
		Currency:      p.Currency,
		Inventory:     inventory,
		Equipped:      equipped,
		Settings:      SettingsFromModel(p.Settings),
		LastLoginDate: p.LastLoginDate,
		LoginStreak:   p.LoginStreak,
	}
}

// DailyBonus is the response for the daily bonus claim
type DailyBonus struct {
	Granted int `json:"granted"`
	Streak  int `json:"streak"`
}

// ShopItem represents a catalog item in API responses
type ShopItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Price       int    `json:"price"`
	Slot        string `json:"slot"`
	AccentColor string `json:"accent_color,omitempty"`
	Owned       bool   `json:"owned"`
	Equipped    bool   `json:"equipped"`
}

// ShopItemFromModel converts a model.ShopItem, annotated against the profile
func ShopItemFromModel(item model.ShopItem, p *model.Profile) ShopItem {
	return ShopItem{
		ID:          string(item.ID),
		DisplayName: item.DisplayName,
		Price:       item.Price,
		Slot:        string(item.Slot),
		AccentColor: item.AccentColor,
		Owned:       p.Owns(item.ID),
		Equipped:    p.EquippedIn(item.Slot) == item.ID,
	}
}

// Room represents an arena room in API responses
type Room struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	SlotCount int    `json:"slot_count"`
	Occupied  int    `json:"occupied"`
	Mode      string `json:"mode,omitempty"`
}

// RoomFromModel converts a model.Room
func RoomFromModel(r model.Room) Room {
	return Room{
		Code:      string(r.Code),
		Name:      r.Name,
		SlotCount: r.SlotCount,
		Occupied:  r.Occupied,
		Mode:      r.Mode,
	}
}

// JoinedRoom is the response for joining a room
type JoinedRoom struct {
	Room   Room     `json:"room"`
	Roster []string `json:"roster"`
}

// GameInfo describes a playable game variant
type GameInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	AccentColor string `json:"accent_color"`
	ScoreLabel  string `json:"score_label"`
	TickMs      int    `json:"tick_ms"`
}

// GameInfoFromDescriptor converts a games.Descriptor
func GameInfoFromDescriptor(d games.Descriptor) GameInfo {
	return GameInfo{
		ID:          string(d.ID),
		Name:        d.Name,
		Icon:        d.Icon,
		AccentColor: d.AccentColor,
		ScoreLabel:  d.ScoreLabel,
		TickMs:      int(d.TickPeriod.Milliseconds()),
	}
}

// StartedGame is the response for starting a run
type StartedGame struct {
	RunID  string `json:"run_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// GameResult represents a finished run in API responses
type GameResult struct {
	RunID      string    `json:"run_id"`
	GameID     string    `json:"game_id"`
	Score      int       `json:"score"`
	ScoreLabel string    `json:"score_label"`
	FinishedAt time.Time `json:"finished_at"`
}

// GameResultFromModel converts a model.GameResult
func GameResultFromModel(r model.GameResult) GameResult {
	return GameResult{
		RunID:      r.RunID,
		GameID:     string(r.GameID),
		Score:      r.Score,
		ScoreLabel: r.ScoreLabel,
		FinishedAt: r.FinishedAt,
	}
}
