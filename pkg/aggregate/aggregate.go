// Package aggregate fans out to the vendor clients, normalizes and
// classifies what they return, and applies the caller's filter, sort and
// limit to the merged batch.
package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freegames-hub/freegames/pkg/normalize"
	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
)

type Logger = platforms.Logger

// Recorder receives per-record outcomes. internal/metrics implements it.
type Recorder interface {
	RecordDropped(src offers.Source)
	RecordClassified(state offers.State)
}

type nopRecorder struct{}

func (nopRecorder) RecordDropped(offers.Source)    {}
func (nopRecorder) RecordClassified(offers.State) {}

// SourceReport summarizes one source's contribution to a batch.
type SourceReport struct {
	Source  offers.Source `json:"source"`
	Enabled bool          `json:"enabled"`
	// Fetched counts vendor records, Dropped those the normalizer rejected.
	Fetched int `json:"fetched"`
	Dropped int `json:"dropped"`
}

// Batch is the immutable result of one aggregation run.
type Batch struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Offers      []offers.Offer `json:"offers"`
	Sources     []SourceReport `json:"sources"`
}

// Config holds everything an Aggregator needs.
type Config struct {
	Clients []platforms.Client
	// Enabled switches sources on explicitly. A source missing from the map
	// is disabled.
	Enabled  map[offers.Source]bool
	Log      Logger   // optional; nil = no logging
	Recorder Recorder // optional
	Now      func() time.Time
}

type Aggregator struct {
	clients  map[offers.Source]platforms.Client
	order    []offers.Source
	Enabled  map[offers.Source]bool
	log      Logger
	recorder Recorder
	now      func() time.Time
}

func New(cfg Config) *Aggregator {
	a := &Aggregator{
		clients:  make(map[offers.Source]platforms.Client, len(cfg.Clients)),
		Enabled:  make(map[offers.Source]bool, len(cfg.Enabled)),
		log:      cfg.Log,
		recorder: cfg.Recorder,
		now:      cfg.Now,
	}
	if a.log == nil {
		a.log = platforms.NopLogger{}
	}
	if a.recorder == nil {
		a.recorder = nopRecorder{}
	}
	if a.now == nil {
		a.now = time.Now
	}
	for _, c := range cfg.Clients {
		if _, dup := a.clients[c.Name()]; !dup {
			a.order = append(a.order, c.Name())
		}
		a.clients[c.Name()] = c
	}
	for src, on := range cfg.Enabled {
		a.Enabled[src] = on
	}
	return a
}

// Sources lists the configured sources with their enable flag, in
// registration order.
func (a *Aggregator) Sources() []SourceReport {
	out := make([]SourceReport, 0, len(a.order))
	for _, src := range a.order {
		out = append(out, SourceReport{Source: src, Enabled: a.Enabled[src]})
	}
	return out
}

// Aggregate fetches the requested sources concurrently (all configured
// sources when none are given) and arranges the result per opts. The only
// error it returns is ErrInvalidOptions; vendor failures shrink the batch.
func (a *Aggregator) Aggregate(ctx context.Context, sources []offers.Source, opts Options) (*Batch, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	targets, err := a.targets(sources)
	if err != nil {
		return nil, err
	}

	reports := make([]SourceReport, len(targets))
	results := make([][]offers.VendorRecord, len(targets))

	var wg sync.WaitGroup
	for i, src := range targets {
		reports[i] = SourceReport{Source: src, Enabled: a.Enabled[src] && a.clients[src] != nil}
		if !reports[i].Enabled {
			a.log.Debugf("Skipping disabled source %s", src)
			continue
		}
		wg.Add(1)
		go func(i int, c platforms.Client) {
			defer wg.Done()
			results[i] = c.FetchRaw(ctx)
		}(i, a.clients[src])
	}
	wg.Wait()

	var merged []offers.Offer
	for i, records := range results {
		reports[i].Fetched = len(records)
		for _, rec := range records {
			o, err := normalize.Normalize(rec)
			if err != nil {
				a.log.Warnf("Dropping %s record: %v", rec.Source, err)
				a.recorder.RecordDropped(rec.Source)
				reports[i].Dropped++
				continue
			}
			merged = append(merged, o)
		}
	}

	now := a.now()
	out, err := arrange(merged, opts, now, a.recorder.RecordClassified)
	if err != nil {
		return nil, err
	}

	return &Batch{
		ID:          uuid.NewString(),
		GeneratedAt: now.UTC(),
		Offers:      out,
		Sources:     reports,
	}, nil
}

// targets resolves the requested sources, defaulting to every configured
// one. Duplicates are collapsed.
func (a *Aggregator) targets(requested []offers.Source) ([]offers.Source, error) {
	if len(requested) == 0 {
		return append([]offers.Source(nil), a.order...), nil
	}
	seen := make(map[offers.Source]bool, len(requested))
	var out []offers.Source
	for _, src := range requested {
		if !src.Valid() {
			return nil, offers.InvalidOptions("unknown source %q", src)
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		out = append(out, src)
	}
	return out, nil
}
