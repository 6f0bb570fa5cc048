// Package normalize maps vendor-native records onto offers.Offer. Every
// function here is pure; each vendor has its own mapper file so a change in
// one vendor's payload cannot affect another's.
package normalize

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
	"github.com/weppos/publicsuffix-go/publicsuffix"
	"golang.org/x/net/html"

	"github.com/freegames-hub/freegames/pkg/offers"
)

type mapper func(root gjson.Result, fetchedAt time.Time) (offers.Offer, error)

var mappers = map[offers.Source]mapper{
	offers.SourceCatalogA:           fromEpic,
	offers.SourceCatalogB:           fromSteam,
	offers.SourceGiveawayAggregator: fromGamerPower,
}

// coverPreference is the role order used to pick the representative image.
var coverPreference = []string{"tall", "wide", "thumbnail"}

// Normalize converts one vendor record. Missing optional fields never fail;
// a missing id, an unknown source or a body that is not a JSON object
// returns an error marked offers.ErrMalformedRecord.
func Normalize(rec offers.VendorRecord) (offers.Offer, error) {
	m, ok := mappers[rec.Source]
	if !ok {
		return offers.Offer{}, offers.MalformedRecord(rec.Source, "unknown source")
	}
	if !gjson.Valid(rec.Body) {
		return offers.Offer{}, offers.MalformedRecord(rec.Source, "record is not valid JSON")
	}
	root := gjson.Parse(rec.Body)
	if !root.IsObject() {
		return offers.Offer{}, offers.MalformedRecord(rec.Source, "record is not an object")
	}

	o, err := m(root, rec.FetchedAt)
	if err != nil {
		return offers.Offer{}, err
	}
	if o.ID == "" {
		return offers.Offer{}, offers.MalformedRecord(rec.Source, "missing id")
	}

	o.Source = rec.Source
	o.FetchedAt = rec.FetchedAt
	if o.Title == "" {
		o.Title = offers.PlaceholderTitle
	}
	if o.Images == nil {
		o.Images = []offers.Image{}
	}
	o.CoverImage = pickCover(o.Images)
	o.PromotionWindows = validWindows(o.PromotionWindows)
	o.StoreDomain = storeDomain(o.ExternalURL)
	return o, nil
}

// resolveTitle returns the first candidate that is non-blank once entities
// are decoded and whitespace is collapsed.
func resolveTitle(candidates ...gjson.Result) string {
	for _, c := range candidates {
		if t := cleanText(html.UnescapeString(c.String())); t != "" {
			return t
		}
	}
	return offers.PlaceholderTitle
}

func pickCover(images []offers.Image) string {
	for _, role := range coverPreference {
		for _, img := range images {
			if img.Role == role && img.URL != "" {
				return img.URL
			}
		}
	}
	for _, img := range images {
		if img.URL != "" {
			return img.URL
		}
	}
	return offers.PlaceholderImage
}

// resolvePrice applies the price rule: a numeric discounted amount is
// authoritative, otherwise the original amount, otherwise the price is
// unknown. scale converts vendor minor units to major units.
func resolvePrice(original, discounted gjson.Result, scale float64, currency string) *offers.Price {
	orig, hasOrig := number(original)
	disc, hasDisc := number(discounted)
	if scale > 0 {
		orig /= scale
		disc /= scale
	}

	switch {
	case hasDisc:
		if !hasOrig {
			orig = disc
		}
	case hasOrig:
		disc = orig
	default:
		return nil
	}

	return &offers.Price{
		OriginalAmount:   orig,
		DiscountedAmount: disc,
		DiscountPercent:  discountPercent(orig, disc),
		Currency:         currency,
	}
}

func discountPercent(orig, disc float64) int {
	if orig <= 0 || disc >= orig {
		return 0
	}
	return int(math.Round((orig - disc) / orig * 100))
}

// number reads a JSON number, or a string holding one with an optional
// currency symbol ("$19.99"). Negative amounts are rejected.
func number(r gjson.Result) (float64, bool) {
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Float()
	case gjson.String:
		s := strings.TrimSpace(r.String())
		s = strings.TrimLeft(s, "$€£¥")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// validWindows drops windows whose start is after their end.
func validWindows(ws []offers.Window) []offers.Window {
	out := make([]offers.Window, 0, len(ws))
	for _, w := range ws {
		if w.StartTime.After(w.EndTime) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func parseTime(r gjson.Result, layouts ...string) (time.Time, bool) {
	s := strings.TrimSpace(r.String())
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// htmlToText strips markup and collapses whitespace.
func htmlToText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}
	return cleanText(doc.Text())
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// storeDomain returns the registrable domain of a storefront URL.
func storeDomain(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	domain, err := publicsuffix.Domain(u.Hostname())
	if err != nil {
		return ""
	}
	return domain
}
