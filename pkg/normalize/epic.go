package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/freegames-hub/freegames/pkg/offers"
)

const epicProductURL = "https://store.epicgames.com/p/"

var epicImageRoles = map[string]string{
	"OfferImageTall":       "tall",
	"DieselStoreFrontTall": "tall",
	"OfferImageWide":       "wide",
	"DieselStoreFrontWide": "wide",
	"Thumbnail":            "thumbnail",
	"DieselGameBoxLogo":    "logo",
}

// fromEpic maps one searchStore element.
func fromEpic(e gjson.Result, _ time.Time) (offers.Offer, error) {
	o := offers.Offer{
		ID:          e.Get("id").String(),
		Title:       resolveTitle(e.Get("title"), e.Get("productSlug")),
		Description: htmlToText(e.Get("description").String()),
	}

	for _, img := range e.Get("keyImages").Array() {
		u := img.Get("url").String()
		if u == "" {
			continue
		}
		typ := img.Get("type").String()
		role, ok := epicImageRoles[typ]
		if !ok {
			role = strings.ToLower(typ)
		}
		o.Images = append(o.Images, offers.Image{Role: role, URL: u})
	}

	total := e.Get("price.totalPrice")
	if total.Exists() {
		decimals := 2
		if d := total.Get("currencyInfo.decimals"); d.Exists() {
			decimals = int(d.Int())
		}
		o.Price = resolvePrice(
			total.Get("originalPrice"),
			total.Get("discountPrice"),
			math.Pow10(decimals),
			total.Get("currencyCode").String(),
		)
	}

	promos := e.Get("promotions")
	for _, key := range []string{"promotionalOffers", "upcomingPromotionalOffers"} {
		flattenPromotions(promos.Get(key), func(p gjson.Result) {
			start, okStart := parseTime(p.Get("startDate"), time.RFC3339)
			end, okEnd := parseTime(p.Get("endDate"), time.RFC3339)
			if !okStart || !okEnd {
				return
			}
			o.PromotionWindows = append(o.PromotionWindows, offers.Window{
				StartTime:       start,
				EndTime:         end,
				DiscountPercent: int(p.Get("discountSetting.discountPercentage").Int()),
			})
		})
	}

	if slug := epicSlug(e); slug != "" {
		o.ExternalURL = epicProductURL + slug
	}
	return o, nil
}

// flattenPromotions walks arrays of arrays and objects that nest a further
// promotionalOffers list, calling fn for every leaf promotion.
func flattenPromotions(r gjson.Result, fn func(gjson.Result)) {
	switch {
	case r.IsArray():
		for _, item := range r.Array() {
			flattenPromotions(item, fn)
		}
	case r.IsObject():
		if nested := r.Get("promotionalOffers"); nested.Exists() {
			flattenPromotions(nested, fn)
			return
		}
		fn(r)
	}
}

func epicSlug(e gjson.Result) string {
	if slug := strings.TrimSuffix(e.Get("productSlug").String(), "/home"); slug != "" && slug != "[]" {
		return slug
	}
	for _, m := range e.Get("catalogNs.mappings").Array() {
		if m.Get("pageType").String() == "productHome" {
			if slug := m.Get("pageSlug").String(); slug != "" {
				return slug
			}
		}
	}
	for _, m := range e.Get("offerMappings").Array() {
		if slug := m.Get("pageSlug").String(); slug != "" {
			return slug
		}
	}
	return e.Get("urlSlug").String()
}
