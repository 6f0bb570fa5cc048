package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freegames-hub/freegames/pkg/offers"
)

// fetch epic: shorthand for --source epic with store-specific flags
var fetchEpicCmd = &cobra.Command{
	Use:   "epic",
	Short: "Fetch Epic Games Store promotions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		viper.Set("epic.enabled", true)
		return runFetch(cmd, []offers.Source{offers.SourceCatalogA})
	},
}

func init() {
	fetchCmd.AddCommand(fetchEpicCmd)
	fetchEpicCmd.Flags().String("locale", "", "Store locale (default en-US)")
	fetchEpicCmd.Flags().String("country", "", "Store country (default US)")
	viper.BindPFlag("epic.locale", fetchEpicCmd.Flags().Lookup("locale"))
	viper.BindPFlag("epic.country", fetchEpicCmd.Flags().Lookup("country"))
}
