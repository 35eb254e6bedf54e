package cli

import (
	"github.com/spf13/cobra"

	"github.com/megahubnet/portal/internal/api/response"
)

func newArenaCmd() *cobra.Command {
	arenaCmd := &cobra.Command{
		Use:   "arena",
		Short: "Multiplayer arena operations",
	}

	arenaCmd.AddCommand(&cobra.Command{
		Use:   "rooms",
		Short: "List available rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			rooms, err := app.ArenaService.ListRooms(cmd.Context())
			if err != nil {
				return err
			}
			out := make([]response.Room, 0, len(rooms))
			for _, room := range rooms {
				out = append(out, response.RoomFromModel(room))
			}
			NewOutput(output).Print(out)
			return nil
		},
	})

	return arenaCmd
}
