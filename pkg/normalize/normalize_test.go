package normalize

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/freegames-hub/freegames/pkg/offers"
)

var fetchedAt = time.Date(2026, 2, 12, 12, 0, 0, 0, time.UTC)

func record(src offers.Source, body string) offers.VendorRecord {
	return offers.VendorRecord{Source: src, Body: body, FetchedAt: fetchedAt}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		rec  offers.VendorRecord
	}{
		{"unknown source", record("gog", `{"id":"1"}`)},
		{"empty source", record("", `{"id":"1"}`)},
		{"not json", record(offers.SourceCatalogA, `{"id":`)},
		{"not an object", record(offers.SourceCatalogB, `[1,2]`)},
		{"missing id epic", record(offers.SourceCatalogA, `{"title":"No id"}`)},
		{"missing id steam", record(offers.SourceCatalogB, `{"name":"No id"}`)},
		{"missing id gamerpower", record(offers.SourceGiveawayAggregator, `{"title":"No id"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.rec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, offers.ErrMalformedRecord), "got %v", err)
		})
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	for _, src := range offers.AllSources {
		o, err := Normalize(record(src, `{"id":"7"}`))
		require.NoError(t, err, src)
		assert.Equal(t, "7", o.ID)
		assert.Equal(t, src, o.Source)
		assert.Equal(t, offers.PlaceholderTitle, o.Title)
		assert.Equal(t, offers.PlaceholderImage, o.CoverImage)
		assert.NotNil(t, o.Images)
		assert.NotNil(t, o.PromotionWindows)
		assert.Equal(t, fetchedAt, o.FetchedAt)
		assert.Empty(t, o.Classification, "normalizer must not classify")
		assert.Nil(t, o.RemainingDuration)
	}
}

func TestPickCover(t *testing.T) {
	tests := []struct {
		name   string
		images []offers.Image
		want   string
	}{
		{"none", nil, offers.PlaceholderImage},
		{"tall wins", []offers.Image{{Role: "thumbnail", URL: "t"}, {Role: "wide", URL: "w"}, {Role: "tall", URL: "T"}}, "T"},
		{"wide over thumbnail", []offers.Image{{Role: "thumbnail", URL: "t"}, {Role: "wide", URL: "w"}}, "w"},
		{"thumbnail over other", []offers.Image{{Role: "logo", URL: "l"}, {Role: "thumbnail", URL: "t"}}, "t"},
		{"first available", []offers.Image{{Role: "logo", URL: "l"}, {Role: "banner", URL: "b"}}, "l"},
		{"skips empty url", []offers.Image{{Role: "tall", URL: ""}, {Role: "wide", URL: "w"}}, "w"},
	}
	for _, tt := range tests {
		if got := pickCover(tt.images); got != tt.want {
			t.Fatalf("%s: pickCover = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolvePrice(t *testing.T) {
	tests := []struct {
		name string
		json string
		want *offers.Price
	}{
		{"discounted authoritative", `{"o":2000,"d":500}`, &offers.Price{OriginalAmount: 20, DiscountedAmount: 5, DiscountPercent: 75}},
		{"discounted zero", `{"o":1999,"d":0}`, &offers.Price{OriginalAmount: 19.99, DiscountedAmount: 0, DiscountPercent: 100}},
		{"original only", `{"o":1000}`, &offers.Price{OriginalAmount: 10, DiscountedAmount: 10}},
		{"discounted only", `{"d":300}`, &offers.Price{OriginalAmount: 3, DiscountedAmount: 3}},
		{"non numeric discounted", `{"o":1000,"d":"n/a"}`, &offers.Price{OriginalAmount: 10, DiscountedAmount: 10}},
		{"neither", `{}`, nil},
		{"negative rejected", `{"o":-5}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gjson.Parse(tt.json)
			got := resolvePrice(r.Get("o"), r.Get("d"), 100, "")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("resolvePrice mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidWindowsDropsInverted(t *testing.T) {
	ws := []offers.Window{
		{StartTime: fetchedAt, EndTime: fetchedAt.Add(time.Hour), DiscountPercent: 100},
		{StartTime: fetchedAt.Add(time.Hour), EndTime: fetchedAt, DiscountPercent: 100},
		{StartTime: fetchedAt, EndTime: fetchedAt, DiscountPercent: 100},
	}
	got := validWindows(ws)
	require.Len(t, got, 2)
	assert.Equal(t, ws[0], got[0])
	assert.Equal(t, ws[2], got[1])
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "Claim it now, it is free!", htmlToText("<p>Claim it <b>now</b>,\n it is   free!</p>"))
	assert.Equal(t, "", htmlToText("   "))
}

func TestStoreDomain(t *testing.T) {
	assert.Equal(t, "epicgames.com", storeDomain("https://store.epicgames.com/p/slug"))
	assert.Equal(t, "example.co.uk", storeDomain("https://www.example.co.uk/giveaway"))
	assert.Equal(t, "", storeDomain(""))
	assert.Equal(t, "", storeDomain("not a url"))
}
