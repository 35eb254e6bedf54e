package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/megahubnet/portal/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Profile:
		o.printProfile(v)
	case response.DailyBonus:
		o.printDailyBonus(v)
	case []response.ShopItem:
		o.printShopItems(v)
	case []response.Room:
		o.printRooms(v)
	case []response.GameInfo:
		o.printGames(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printProfile(p response.Profile) {
	fmt.Printf("Nickname: %s\n", p.Nickname)
	fmt.Printf("Level: %d (%d XP)\n", p.Level, p.Experience)
	fmt.Printf("Credits: %d\n", p.Currency)
	if p.LoginStreak > 0 {
		fmt.Printf("Login Streak: %d day(s)\n", p.LoginStreak)
	}
	if len(p.Inventory) > 0 {
		fmt.Printf("Inventory: %s\n", strings.Join(p.Inventory, ", "))
	}
	for slot, item := range p.Equipped {
		fmt.Printf("Equipped %s: %s\n", slot, item)
	}
}

func (o *Output) printDailyBonus(b response.DailyBonus) {
	if b.Granted == 0 {
		fmt.Println("Daily bonus already claimed today")
		return
	}
	fmt.Printf("Daily bonus: +%d credits (day %d)\n", b.Granted, b.Streak)
}

func (o *Output) printShopItems(items []response.ShopItem) {
	for _, item := range items {
		status := ""
		if item.Equipped {
			status = " [equipped]"
		} else if item.Owned {
			status = " [owned]"
		}
		fmt.Printf("%-16s %-20s %5d credits  (%s)%s\n",
			item.ID, item.DisplayName, item.Price, item.Slot, status)
	}
}

func (o *Output) printRooms(rooms []response.Room) {
	for _, room := range rooms {
		fmt.Printf("%-8s %-16s %d/%d", room.Code, room.Name, room.Occupied, room.SlotCount)
		if room.Mode != "" {
			fmt.Printf("  %s", room.Mode)
		}
		fmt.Println()
	}
}

func (o *Output) printGames(infos []response.GameInfo) {
	for _, info := range infos {
		fmt.Printf("%-8s %s %s (%s)\n", info.ID, info.Icon, info.Name, info.ScoreLabel)
	}
}
