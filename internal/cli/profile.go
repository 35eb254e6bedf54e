package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/megahubnet/portal/internal/api/response"
)

func newProfileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and manage the local profile",
	}

	profileCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			p := app.Engine.Profile()
			NewOutput(output).Print(response.ProfileFromModel(p, app.Engine.Config().LevelDivisor))
			return nil
		},
	})

	profileCmd.AddCommand(&cobra.Command{
		Use:   "nickname <name>",
		Short: "Set the profile nickname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			if err := app.Engine.SetNickname(cmd.Context(), args[0]); err != nil {
				return err
			}
			NewOutput(output).PrintMessage(fmt.Sprintf("Nickname set to %s", args[0]))
			return nil
		},
	})

	profileCmd.AddCommand(&cobra.Command{
		Use:   "daily",
		Short: "Claim the daily login bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			granted, err := app.Engine.ApplyDailyBonus(cmd.Context())
			if err != nil {
				return err
			}
			NewOutput(output).Print(response.DailyBonus{
				Granted: granted,
				Streak:  app.Engine.Profile().LoginStreak,
			})
			return nil
		},
	})

	profileCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update a setting (sound, volume, theme, effects, season)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			if err := app.Engine.UpdateSetting(cmd.Context(), args[0], parseSettingValue(args[1])); err != nil {
				return err
			}
			NewOutput(output).PrintMessage(fmt.Sprintf("Setting %s updated", args[0]))
			return nil
		},
	})

	profileCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the profile to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			if err := app.Engine.Reset(cmd.Context()); err != nil {
				return err
			}
			NewOutput(output).PrintMessage("Profile reset")
			return nil
		},
	})

	return profileCmd
}

// parseSettingValue maps flag text onto the value types settings accept
func parseSettingValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
