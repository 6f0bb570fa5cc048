package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/freegames-hub/freegames/internal/config"
	"github.com/freegames-hub/freegames/internal/metrics"
	"github.com/freegames-hub/freegames/internal/utils"
	"github.com/freegames-hub/freegames/pkg/aggregate"
	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
	"github.com/freegames-hub/freegames/pkg/storage"
	"github.com/freegames-hub/freegames/pkg/whttp"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch offers from every enabled storefront",
	Long: `Fetch offers from the enabled storefronts, classify them and print the result.

Use a subcommand (epic, steam, gamerpower) to query a single storefront with
storefront-specific flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringSlice("source")
		sources, err := aggregate.ParseSources(utils.SplitList(raw...))
		if err != nil {
			return err
		}
		return runFetch(cmd, sources)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringSlice("source", nil, "Sources to query (epic, steam, gamerpower). Default: all enabled")

	fetchCmd.PersistentFlags().StringSliceP("state", "s", nil, "Only show offers in these states (free-now, free-soon, expired, paid)")
	fetchCmd.PersistentFlags().StringP("search", "q", "", "Case-insensitive search on title and description")
	fetchCmd.PersistentFlags().String("sort", "", "Sort order (title-asc, title-desc, date-asc, date-desc, price-asc, price-desc)")
	fetchCmd.PersistentFlags().Int("limit", 0, "Maximum number of offers to print (0 = no limit)")
	fetchCmd.PersistentFlags().StringP("output", "o", formatTable, "Output format: table, json, yaml, txt")
	fetchCmd.PersistentFlags().String("fields", "stu", "txt fields: t (title), s (state), o (source), u (url), p (price), e (end), i (id)")
	fetchCmd.PersistentFlags().StringP("delimiter", "d", " ", "Delimiter for txt output")
	fetchCmd.PersistentFlags().Bool("save", false, "Store the fetched batch as the current snapshot")
}

// runFetch aggregates the given sources, optionally stores the whole batch
// and prints it arranged per the command's flags.
func runFetch(cmd *cobra.Command, sources []offers.Source) error {
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	agg, err := newAggregator(cfg, metrics.NewRegistry())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Aggregate unfiltered so --save always stores everything that was fetched.
	batch, err := agg.Aggregate(ctx, sources, aggregate.Options{})
	if err != nil {
		return err
	}
	for _, r := range batch.Sources {
		utils.Log.Debugf("%s: enabled=%t fetched=%d dropped=%d", r.Source, r.Enabled, r.Fetched, r.Dropped)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveSnapshot(ctx, cfg.DBPath, batch); err != nil {
			return err
		}
		utils.Log.Infof("Stored snapshot %s with %d offers", batch.ID, len(batch.Offers))
	}

	list, err := aggregate.Arrange(batch.Offers, opts, batch.GeneratedAt)
	if err != nil {
		return err
	}
	return printFromFlags(cmd, list)
}

func optionsFromFlags(cmd *cobra.Command) (aggregate.Options, error) {
	rawStates, _ := cmd.Flags().GetStringSlice("state")
	search, _ := cmd.Flags().GetString("search")
	rawSort, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	states, err := aggregate.ParseStates(utils.SplitList(rawStates...))
	if err != nil {
		return aggregate.Options{}, err
	}
	sortBy, err := aggregate.ParseSort(rawSort)
	if err != nil {
		return aggregate.Options{}, err
	}
	opts := aggregate.Options{
		States: states,
		Search: search,
		SortBy: sortBy,
		Limit:  limit,
	}
	return opts, opts.Validate()
}

func printFromFlags(cmd *cobra.Command, list []offers.Offer) error {
	output, _ := cmd.Flags().GetString("output")
	fields, _ := cmd.Flags().GetString("fields")
	delimiter, _ := cmd.Flags().GetString("delimiter")
	return printOffers(cmd.OutOrStdout(), list, output, fields, delimiter)
}

// newAggregator wires the vendor clients from cfg into an aggregator that
// reports to reg.
func newAggregator(cfg config.Config, reg *metrics.Registry) (*aggregate.Aggregator, error) {
	client, err := whttp.NewClient(whttp.ClientOptions{
		Timeout:   cfg.HTTP.Timeout,
		Proxy:     cfg.HTTP.Proxy,
		UserAgent: cfg.HTTP.UserAgent,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating HTTP client")
	}
	deps := platforms.Deps{
		HTTP:     client,
		Log:      utils.Log,
		Recorder: reg,
	}
	return aggregate.New(aggregate.Config{
		Clients:  cfg.Clients(deps),
		Enabled:  cfg.Enabled(),
		Log:      utils.Log,
		Recorder: reg,
		Now:      time.Now,
	}), nil
}

// saveSnapshot replaces the stored snapshot while holding the database lock.
func saveSnapshot(ctx context.Context, dbPath string, batch *aggregate.Batch) error {
	absPath, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return errors.Wrap(err, "creating database directory")
	}

	lock, err := utils.NewDBLock(absPath)
	if err != nil {
		return err
	}
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	db, err := storage.Open(absPath)
	if err != nil {
		return errors.Wrapf(err, "opening %s", absPath)
	}
	defer db.Close()

	return db.ReplaceSnapshot(ctx, storage.Snapshot{
		BatchID:     batch.ID,
		GeneratedAt: batch.GeneratedAt,
		Offers:      batch.Offers,
	})
}
