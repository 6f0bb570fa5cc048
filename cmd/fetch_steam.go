package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freegames-hub/freegames/pkg/offers"
)

// fetch steam: shorthand for --source steam with store-specific flags
var fetchSteamCmd = &cobra.Command{
	Use:   "steam",
	Short: "Fetch Steam featured specials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		viper.Set("steam.enabled", true)
		return runFetch(cmd, []offers.Source{offers.SourceCatalogB})
	},
}

func init() {
	fetchCmd.AddCommand(fetchSteamCmd)
	fetchSteamCmd.Flags().String("cc", "", "Store country code (default us)")
	fetchSteamCmd.Flags().String("lang", "", "Store language (default english)")
	viper.BindPFlag("steam.country", fetchSteamCmd.Flags().Lookup("cc"))
	viper.BindPFlag("steam.language", fetchSteamCmd.Flags().Lookup("lang"))
}
