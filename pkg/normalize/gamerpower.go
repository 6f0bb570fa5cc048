package normalize

import (
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"

	"github.com/freegames-hub/freegames/pkg/offers"
)

const gamerPowerTimeLayout = "2006-01-02 15:04:05"

var instructionsPolicy = bluemonday.UGCPolicy()

// fromGamerPower maps one giveaway listing. Listings are free by
// construction, so the override flag is always set.
func fromGamerPower(e gjson.Result, fetchedAt time.Time) (offers.Offer, error) {
	o := offers.Offer{
		ID:             e.Get("id").String(),
		Title:          resolveTitle(e.Get("title"), e.Get("name")),
		Description:    htmlToText(e.Get("description").String()),
		Instructions:   strings.TrimSpace(instructionsPolicy.Sanitize(e.Get("instructions").String())),
		IsFreeOverride: offers.Bool(true),
	}

	if u := e.Get("thumbnail").String(); u != "" {
		o.Images = append(o.Images, offers.Image{Role: "thumbnail", URL: u})
	}
	if u := e.Get("image").String(); u != "" {
		o.Images = append(o.Images, offers.Image{Role: "wide", URL: u})
	}

	worth := e.Get("worth")
	if amount, ok := number(worth); ok {
		currency := ""
		if strings.HasPrefix(strings.TrimSpace(worth.String()), "$") {
			currency = "USD"
		}
		o.Price = &offers.Price{
			OriginalAmount:   amount,
			DiscountedAmount: 0,
			DiscountPercent:  100,
			Currency:         currency,
		}
	}

	// end_date is "N/A" for open-ended giveaways, which then carry no window.
	if end, ok := parseTime(e.Get("end_date"), gamerPowerTimeLayout, time.RFC3339); ok {
		start, ok := parseTime(e.Get("published_date"), gamerPowerTimeLayout, time.RFC3339)
		if !ok {
			start = fetchedAt.UTC()
		}
		if start.IsZero() || start.After(end) {
			start = end
		}
		o.PromotionWindows = append(o.PromotionWindows, offers.Window{
			StartTime:       start,
			EndTime:         end,
			DiscountPercent: 100,
		})
	}

	for _, p := range strings.Split(e.Get("platforms").String(), ",") {
		if p = strings.TrimSpace(p); p != "" {
			o.Platforms = append(o.Platforms, p)
		}
	}

	o.ExternalURL = e.Get("open_giveaway_url").String()
	if o.ExternalURL == "" {
		o.ExternalURL = e.Get("gamerpower_url").String()
	}
	return o, nil
}
