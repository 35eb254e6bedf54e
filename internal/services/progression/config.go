package progression

// Config holds the tunable economy constants. These are configuration,
// not invariants; DefaultConfig is the documented stock set.
type Config struct {
	// LevelDivisor converts experience into a derived level:
	// level = experience/LevelDivisor + 1
	LevelDivisor int

	// StartingCurrency is the first-run balance
	StartingCurrency int

	// DailyBaseBonus and DailyStreakBonus set the once-per-day grant:
	// base + streak * per-streak increment
	DailyBaseBonus   int
	DailyStreakBonus int

	// DefaultNickname is assigned on first run
	DefaultNickname string
}

// DefaultConfig returns the stock economy constants
func DefaultConfig() Config {
	return Config{
		LevelDivisor:     500,
		StartingCurrency: 1500,
		DailyBaseBonus:   150,
		DailyStreakBonus: 50,
		DefaultNickname:  "Guest_Player",
	}
}

// dateLayout is the persisted form of the daily-bonus calendar date
const dateLayout = "2006-01-02"
