package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/megahubnet/portal/internal/api/response"
	"github.com/megahubnet/portal/internal/model"
)

// quietLogger discards logs so command output stays clean
func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newShopCmd() *cobra.Command {
	shopCmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse and buy cosmetics",
	}

	shopCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			p := app.Engine.Profile()
			items := app.Catalog.All()
			out := make([]response.ShopItem, 0, len(items))
			for _, item := range items {
				out = append(out, response.ShopItemFromModel(item, p))
			}
			NewOutput(output).Print(out)
			return nil
		},
	})

	shopCmd.AddCommand(&cobra.Command{
		Use:   "buy <item-id>",
		Short: "Purchase an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			if err := app.Engine.PurchaseItem(cmd.Context(), model.ItemID(args[0])); err != nil {
				return err
			}
			p := app.Engine.Profile()
			NewOutput(output).PrintMessage(fmt.Sprintf("Purchased %s (%d credits left)", args[0], p.Currency))
			return nil
		},
	})

	shopCmd.AddCommand(&cobra.Command{
		Use:   "equip <item-id>",
		Short: "Equip or unequip an owned item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(quietLogger())
			if err != nil {
				return err
			}

			if err := app.Engine.ToggleEquip(cmd.Context(), model.ItemID(args[0])); err != nil {
				return err
			}
			NewOutput(output).PrintMessage(fmt.Sprintf("Toggled %s", args[0]))
			return nil
		},
	})

	return shopCmd
}
