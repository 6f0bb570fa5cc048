package aggregate

import (
	"strings"

	"github.com/freegames-hub/freegames/pkg/offers"
)

// SortKey orders a batch. The zero value keeps fetch order.
type SortKey string

const (
	SortNone      SortKey = ""
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
	SortDateAsc   SortKey = "date-asc"
	SortDateDesc  SortKey = "date-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

var SortKeys = []SortKey{SortTitleAsc, SortTitleDesc, SortDateAsc, SortDateDesc, SortPriceAsc, SortPriceDesc}

// ParseSort accepts the short form ("price-asc") and the long form
// ("price-ascending"), case-insensitively.
func ParseSort(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Replace(s, "ascending", "asc", 1)
	s = strings.Replace(s, "descending", "desc", 1)
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" {
		return SortNone, nil
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return SortNone, offers.InvalidOptions("unknown sort key %q", s)
}

// Options narrow and order a batch. Zero values mean no filtering, fetch
// order and no limit.
type Options struct {
	States  []offers.State
	Sources []offers.Source
	// Search is matched case-insensitively against title and description.
	Search string
	SortBy SortKey
	// Limit caps the result size after sorting. 0 means unlimited.
	Limit int
}

// Validate reports the first invalid field as ErrInvalidOptions.
func (o Options) Validate() error {
	for _, st := range o.States {
		if !st.Valid() {
			return offers.InvalidOptions("unknown state %q", st)
		}
	}
	for _, src := range o.Sources {
		if !src.Valid() {
			return offers.InvalidOptions("unknown source %q", src)
		}
	}
	if o.SortBy != SortNone {
		if _, err := ParseSort(string(o.SortBy)); err != nil {
			return err
		}
	}
	if o.Limit < 0 {
		return offers.InvalidOptions("limit must not be negative, got %d", o.Limit)
	}
	return nil
}

// ParseStates resolves user supplied state names.
func ParseStates(in []string) ([]offers.State, error) {
	var out []offers.State
	for _, s := range in {
		st, ok := offers.ParseState(s)
		if !ok {
			return nil, offers.InvalidOptions("unknown state %q", s)
		}
		out = append(out, st)
	}
	return out, nil
}

// ParseSources resolves source ids and their aliases (epic, steam, gamerpower).
func ParseSources(in []string) ([]offers.Source, error) {
	var out []offers.Source
	for _, s := range in {
		src, ok := offers.ParseSource(s)
		if !ok {
			return nil, offers.InvalidOptions("unknown source %q", s)
		}
		out = append(out, src)
	}
	return out, nil
}
