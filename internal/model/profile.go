package model

// SlotType is a cosmetic category. At most one item may be equipped per slot.
type SlotType string

const (
	SlotFrame SlotType = "frame"
	SlotGlow  SlotType = "glow"
	SlotBadge SlotType = "badge"
)

// Theme names for the visual theme setting
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings holds the player's named options
type Settings struct {
	Sound   bool   `json:"sound"`
	Volume  int    `json:"volume"` // 0-100
	Theme   string `json:"theme"`
	Effects bool   `json:"effects"`
	Season  string `json:"season"` // decorative background effect
}

// DefaultSettings returns the first-run settings
func DefaultSettings() Settings {
	return Settings{
		Sound:   true,
		Volume:  50,
		Theme:   ThemeDark,
		Effects: true,
		Season:  "stars",
	}
}

// Profile is the single persisted player state.
// It is mutated exclusively through the progression engine.
type Profile struct {
	Nickname   string
	Experience int
	Currency   int
	// Inventory is the ordered set of owned item ids
	Inventory []ItemID
	// Equipped maps slot type to the equipped item id; absent slot means none
	Equipped      map[SlotType]ItemID
	Settings      Settings
	LastLoginDate string // local calendar date, "2006-01-02"; empty before first bonus
	LoginStreak   int
}

// Owns reports whether the profile owns the given item
func (p *Profile) Owns(id ItemID) bool {
	for _, owned := range p.Inventory {
		if owned == id {
			return true
		}
	}
	return false
}

// EquippedIn returns the item equipped in the slot, or empty
func (p *Profile) EquippedIn(slot SlotType) ItemID {
	if p.Equipped == nil {
		return ""
	}
	return p.Equipped[slot]
}

// Level derives the player level from experience.
// It is never stored, to avoid drift between the two counters.
func (p *Profile) Level(levelDivisor int) int {
	if levelDivisor <= 0 {
		return 1
	}
	return p.Experience/levelDivisor + 1
}

// Clone returns a deep copy safe to hand to readers
func (p *Profile) Clone() *Profile {
	clone := *p
	clone.Inventory = make([]ItemID, len(p.Inventory))
	copy(clone.Inventory, p.Inventory)
	clone.Equipped = make(map[SlotType]ItemID, len(p.Equipped))
	for slot, id := range p.Equipped {
		clone.Equipped[slot] = id
	}
	return &clone
}
