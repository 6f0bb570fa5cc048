package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freegames-hub/freegames/pkg/offers"
)

// fetch gamerpower: shorthand for --source gamerpower with giveaway filters
var fetchGamerPowerCmd = &cobra.Command{
	Use:     "gamerpower",
	Aliases: []string{"giveaways"},
	Short:   "Fetch GamerPower giveaways",
	RunE: func(cmd *cobra.Command, _ []string) error {
		viper.Set("gamerpower.enabled", true)
		return runFetch(cmd, []offers.Source{offers.SourceGiveawayAggregator})
	},
}

func init() {
	fetchCmd.AddCommand(fetchGamerPowerCmd)
	fetchGamerPowerCmd.Flags().String("type", "", "Giveaway type: game, loot or beta (default game)")
	fetchGamerPowerCmd.Flags().String("platform", "", "Only giveaways for this platform (pc, steam, epic-games-store, ...)")
	viper.BindPFlag("gamerpower.type", fetchGamerPowerCmd.Flags().Lookup("type"))
	viper.BindPFlag("gamerpower.platform", fetchGamerPowerCmd.Flags().Lookup("platform"))
}
