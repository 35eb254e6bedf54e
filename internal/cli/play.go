package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/megahubnet/portal/internal/api/response"
	"github.com/megahubnet/portal/internal/games/registry"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/tui"
)

func newPlayCmd() *cobra.Command {
	playCmd := &cobra.Command{
		Use:   "play <game>",
		Short: "Play a mini-game in the terminal",
		Long: `play runs one of the portal mini-games in the terminal.

Scores feed the profile: finished runs award credits and experience.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				infos := registry.List(app.GameDeps())
				out := make([]response.GameInfo, 0, len(infos))
				for _, d := range infos {
					out = append(out, response.GameInfoFromDescriptor(d))
				}
				NewOutput(output).Print(out)
				return nil
			}

			id := model.GameID(strings.ToLower(args[0]))
			player, err := tui.New(app.Runner, app.Session, app.GameDeps(), quietLogger())
			if err != nil {
				return err
			}
			defer player.Close()

			if err := player.Run(cmd.Context(), id); err != nil {
				return err
			}

			p := app.Engine.Profile()
			fmt.Printf("Credits: %d | Level %d\n", p.Currency, app.Engine.Level())
			return nil
		},
	}

	return playCmd
}
