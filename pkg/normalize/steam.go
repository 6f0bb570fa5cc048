package normalize

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/freegames-hub/freegames/pkg/offers"
)

const steamAppURL = "https://store.steampowered.com/app/"

// fromSteam maps one featuredcategories specials item. Prices are in cents.
func fromSteam(e gjson.Result, fetchedAt time.Time) (offers.Offer, error) {
	o := offers.Offer{
		ID:    e.Get("id").String(),
		Title: resolveTitle(e.Get("name"), e.Get("title")),
	}

	for _, img := range []struct{ field, role string }{
		{"large_capsule_image", "wide"},
		{"header_image", "wide"},
		{"small_capsule_image", "thumbnail"},
	} {
		if u := e.Get(img.field).String(); u != "" {
			o.Images = append(o.Images, offers.Image{Role: img.role, URL: u})
		}
	}

	o.Price = resolvePrice(e.Get("original_price"), e.Get("final_price"), 100, e.Get("currency").String())

	// Steam only reports when a discount ends; the window is taken to start
	// no later than the moment the listing was observed.
	if e.Get("discounted").Bool() {
		if exp := e.Get("discount_expiration").Int(); exp > 0 {
			end := time.Unix(exp, 0).UTC()
			start := fetchedAt.UTC()
			if start.IsZero() || end.Before(start) {
				start = end
			}
			o.PromotionWindows = append(o.PromotionWindows, offers.Window{
				StartTime:       start,
				EndTime:         end,
				DiscountPercent: int(e.Get("discount_percent").Int()),
			})
		}
	}

	for _, p := range []struct{ field, name string }{
		{"windows_available", "Windows"},
		{"mac_available", "macOS"},
		{"linux_available", "Linux"},
	} {
		if e.Get(p.field).Bool() {
			o.Platforms = append(o.Platforms, p.name)
		}
	}

	if o.ID != "" {
		o.ExternalURL = steamAppURL + o.ID
	}
	return o, nil
}
