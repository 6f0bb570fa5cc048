package offers

import (
	"strings"
	"time"
)

// Source identifies one vendor catalog.
type Source string

const (
	SourceCatalogA           Source = "catalogA"
	SourceCatalogB           Source = "catalogB"
	SourceGiveawayAggregator Source = "giveawayAggregator"
)

// AllSources lists every known source in display order.
var AllSources = []Source{SourceCatalogA, SourceCatalogB, SourceGiveawayAggregator}

// sourceAliases maps the names users type on the command line or in query
// strings to a Source.
var sourceAliases = map[string]Source{
	"cataloga":           SourceCatalogA,
	"epic":               SourceCatalogA,
	"catalogb":           SourceCatalogB,
	"steam":              SourceCatalogB,
	"giveawayaggregator": SourceGiveawayAggregator,
	"gamerpower":         SourceGiveawayAggregator,
	"giveaway":           SourceGiveawayAggregator,
}

// ParseSource resolves a source id or one of its aliases.
func ParseSource(s string) (Source, bool) {
	src, ok := sourceAliases[strings.ToLower(strings.TrimSpace(s))]
	return src, ok
}

func (s Source) Valid() bool {
	for _, src := range AllSources {
		if s == src {
			return true
		}
	}
	return false
}

// State is the derived temporal classification of an Offer.
type State string

const (
	StateFreeNow  State = "free-now"
	StateFreeSoon State = "free-soon"
	StateExpired  State = "expired"
	StatePaid     State = "paid"
)

var AllStates = []State{StateFreeNow, StateFreeSoon, StateExpired, StatePaid}

func (s State) Valid() bool {
	for _, st := range AllStates {
		if s == st {
			return true
		}
	}
	return false
}

// ParseState accepts the canonical spelling and the underscore variant.
func ParseState(s string) (State, bool) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, st := range AllStates {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

const (
	// PlaceholderTitle is used when a vendor record carries no usable name.
	PlaceholderTitle = "Untitled game"
	// PlaceholderImage is the sentinel cover used when a record has no images.
	PlaceholderImage = "https://placehold.co/600x900?text=No+Image"
)

type Image struct {
	Role string `json:"role"`
	URL  string `json:"url"`
}

// Price amounts are in major currency units. A nil *Price means unknown.
type Price struct {
	OriginalAmount   float64 `json:"originalAmount"`
	DiscountedAmount float64 `json:"discountedAmount"`
	DiscountPercent  int     `json:"discountPercent"`
	Currency         string  `json:"currency,omitempty"`
}

// Effective is what the buyer pays.
func (p *Price) Effective() float64 {
	return p.DiscountedAmount
}

// Window is one promotion period. StartTime <= EndTime always holds for
// windows produced by the normalizer.
type Window struct {
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DiscountPercent int       `json:"discountPercent"`
}

// Elapsed reports whether the window carries no time at all.
func (w Window) Elapsed() bool {
	return !w.StartTime.Before(w.EndTime)
}

func (w Window) IsFree() bool {
	return w.DiscountPercent == 100
}

type Remaining struct {
	Days  int `json:"days"`
	Hours int `json:"hours"`
}

// RemainingFrom splits d into whole days and leftover whole hours. Negative
// durations clamp to zero.
func RemainingFrom(d time.Duration) *Remaining {
	if d < 0 {
		d = 0
	}
	return &Remaining{
		Days:  int(d / (24 * time.Hour)),
		Hours: int((d % (24 * time.Hour)) / time.Hour),
	}
}

// Classification is the verdict of the temporal classifier at one instant.
type Classification struct {
	State     State
	Remaining *Remaining
	Reason    string
}

// Offer is one game's free/paid/promotional state from one source.
type Offer struct {
	ID               string    `json:"id"`
	Source           Source    `json:"source"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Images           []Image   `json:"images"`
	CoverImage       string    `json:"coverImage"`
	Price            *Price    `json:"price"`
	PromotionWindows []Window  `json:"promotionWindows"`
	ExternalURL      string    `json:"externalUrl"`
	IsFreeOverride   *bool     `json:"isFreeOverride,omitempty"`
	Platforms        []string  `json:"platforms,omitempty"`
	StoreDomain      string    `json:"storeDomain,omitempty"`
	Instructions     string    `json:"instructions,omitempty"`
	FetchedAt        time.Time `json:"fetchedAt"`

	// Set by classify.Apply only.
	Classification    State      `json:"classification"`
	RemainingDuration *Remaining `json:"remainingDuration"`
	StatusReason      string     `json:"statusReason,omitempty"`
}

// Key is the composite identity used for de-duplication.
func (o Offer) Key() string {
	return string(o.Source) + "|" + o.ID
}

// FreeOverride reports whether the vendor guaranteed this offer is free.
func (o Offer) FreeOverride() bool {
	return o.IsFreeOverride != nil && *o.IsFreeOverride
}

// Earliest returns the earliest promotion start, or false when there are no
// windows.
func (o Offer) Earliest() (time.Time, bool) {
	if len(o.PromotionWindows) == 0 {
		return time.Time{}, false
	}
	earliest := o.PromotionWindows[0].StartTime
	for _, w := range o.PromotionWindows[1:] {
		if w.StartTime.Before(earliest) {
			earliest = w.StartTime
		}
	}
	return earliest, true
}

// VendorRecord is one vendor-native element tagged with its source. Body holds
// the raw JSON of that element.
type VendorRecord struct {
	Source    Source
	Body      string
	FetchedAt time.Time
}

func Bool(b bool) *bool { return &b }
