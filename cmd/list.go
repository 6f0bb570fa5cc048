package cmd

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/freegames-hub/freegames/internal/utils"
	"github.com/freegames-hub/freegames/pkg/aggregate"
	"github.com/freegames-hub/freegames/pkg/storage"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the stored snapshot, classified against the current time",
	Long: `Print the offers stored by the last "fetch --save" without contacting any
storefront. Offers are classified again against the current time, so a stored
promotion moves from upcoming to free-now to expired as the clock advances.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetStringSlice("source")
		if opts.Sources, err = aggregate.ParseSources(utils.SplitList(raw...)); err != nil {
			return err
		}

		absPath, err := utils.GetAbsDBPath(loadConfig().DBPath)
		if err != nil {
			return err
		}
		db, err := storage.Open(absPath)
		if err != nil {
			return errors.Wrapf(err, "opening %s", absPath)
		}
		defer db.Close()

		snap, err := db.LoadSnapshot(context.Background())
		if errors.Is(err, storage.ErrNoSnapshot) {
			utils.Log.Warnf("No snapshot stored yet. Run \"freegames fetch --save\" first.")
			return nil
		}
		if err != nil {
			return err
		}
		utils.Log.Debugf("Snapshot %s generated at %s", snap.BatchID, snap.GeneratedAt.Format(time.RFC3339))

		list, err := aggregate.Arrange(snap.Offers, opts, time.Now())
		if err != nil {
			return err
		}
		return printFromFlags(cmd, list)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringSlice("source", nil, "Only show offers from these sources")
	listCmd.Flags().StringSliceP("state", "s", nil, "Only show offers in these states (free-now, free-soon, expired, paid)")
	listCmd.Flags().StringP("search", "q", "", "Case-insensitive search on title and description")
	listCmd.Flags().String("sort", "", "Sort order (title-asc, title-desc, date-asc, date-desc, price-asc, price-desc)")
	listCmd.Flags().Int("limit", 0, "Maximum number of offers to print (0 = no limit)")
	listCmd.Flags().StringP("output", "o", formatTable, "Output format: table, json, yaml, txt")
	listCmd.Flags().String("fields", "stu", "txt fields: t (title), s (state), o (source), u (url), p (price), e (end), i (id)")
	listCmd.Flags().StringP("delimiter", "d", " ", "Delimiter for txt output")
}
