package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/freegames-hub/freegames/pkg/classify"
	"github.com/freegames-hub/freegames/pkg/offers"
)

// Arrange runs the post-fetch pipeline over already normalized offers:
// classify at now, de-duplicate by (source, id), filter, sort, limit. The
// input slice is not modified.
func Arrange(in []offers.Offer, opts Options, now time.Time) ([]offers.Offer, error) {
	return arrange(in, opts, now, nil)
}

func arrange(in []offers.Offer, opts Options, now time.Time, onClassified func(offers.State)) ([]offers.Offer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	sortBy, err := ParseSort(string(opts.SortBy))
	if err != nil {
		return nil, err
	}

	classified := make([]offers.Offer, len(in))
	for i := range in {
		classified[i] = in[i]
		classify.Apply(&classified[i], now)
		if onClassified != nil {
			onClassified(classified[i].Classification)
		}
	}

	out := filter(dedup(classified), opts)
	sortOffers(out, sortBy)

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// dedup keeps one offer per key. A later duplicate replaces the earlier one
// in place.
func dedup(in []offers.Offer) []offers.Offer {
	out := make([]offers.Offer, 0, len(in))
	seen := make(map[string]int, len(in))
	for _, o := range in {
		if i, ok := seen[o.Key()]; ok {
			out[i] = o
			continue
		}
		seen[o.Key()] = len(out)
		out = append(out, o)
	}
	return out
}

func filter(in []offers.Offer, opts Options) []offers.Offer {
	query := strings.ToLower(strings.TrimSpace(opts.Search))
	out := in[:0]
	for _, o := range in {
		if len(opts.States) > 0 && !containsState(opts.States, o.Classification) {
			continue
		}
		if len(opts.Sources) > 0 && !containsSource(opts.Sources, o.Source) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(o.Title), query) &&
			!strings.Contains(strings.ToLower(o.Description), query) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func containsState(states []offers.State, s offers.State) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}

func containsSource(sources []offers.Source, s offers.Source) bool {
	for _, src := range sources {
		if src == s {
			return true
		}
	}
	return false
}

// sortOffers orders in place, preserving input order on ties. Offers that
// lack the sort key go last regardless of direction.
func sortOffers(in []offers.Offer, by SortKey) {
	var (
		less func(a, b offers.Offer) bool
		desc bool
	)
	switch by {
	case SortTitleAsc, SortTitleDesc:
		less = func(a, b offers.Offer) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
		desc = by == SortTitleDesc
	case SortDateAsc, SortDateDesc:
		less = keyed(dateKey, func(a, b time.Time) bool { return a.Before(b) }, by == SortDateDesc)
	case SortPriceAsc, SortPriceDesc:
		less = keyed(priceKey, func(a, b float64) bool { return a < b }, by == SortPriceDesc)
	default:
		return
	}

	sort.SliceStable(in, func(i, j int) bool {
		if desc {
			return less(in[j], in[i])
		}
		return less(in[i], in[j])
	})
}

// keyed builds a comparison over an optional key. Missing keys compare
// greater than any present key in both directions.
func keyed[K any](key func(offers.Offer) (K, bool), lt func(a, b K) bool, desc bool) func(a, b offers.Offer) bool {
	return func(a, b offers.Offer) bool {
		ka, okA := key(a)
		kb, okB := key(b)
		switch {
		case okA != okB:
			return okA
		case !okA:
			return false
		case desc:
			return lt(kb, ka)
		default:
			return lt(ka, kb)
		}
	}
}

func dateKey(o offers.Offer) (time.Time, bool) {
	return o.Earliest()
}

func priceKey(o offers.Offer) (float64, bool) {
	if o.Price == nil {
		return 0, false
	}
	return o.Price.Effective(), true
}
