package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/freegames-hub/freegames/pkg/offers"
)

func sampleList() []offers.Offer {
	end := time.Date(2026, 2, 19, 16, 0, 0, 0, time.UTC)
	return []offers.Offer{
		{
			ID:          "abc",
			Source:      offers.SourceCatalogA,
			Title:       "Hollow Knight",
			ExternalURL: "https://store.epicgames.com/p/hollow-knight",
			Price:       &offers.Price{OriginalAmount: 14.99, DiscountedAmount: 0, DiscountPercent: 100, Currency: "USD"},
			PromotionWindows: []offers.Window{
				{StartTime: end.Add(-7 * 24 * time.Hour), EndTime: end, DiscountPercent: 100},
			},
			Classification:    offers.StateFreeNow,
			RemainingDuration: &offers.Remaining{Days: 7, Hours: 4},
		},
		{
			ID:             "730",
			Source:         offers.SourceCatalogB,
			Title:          "Counter-Strike",
			ExternalURL:    "https://store.steampowered.com/app/730",
			Classification: offers.StatePaid,
		},
	}
}

func TestCreateLine(t *testing.T) {
	o := sampleList()[0]

	line, err := createLine(o, "stu", " ")
	require.NoError(t, err)
	assert.Equal(t, "free-now Hollow Knight https://store.epicgames.com/p/hollow-knight", line)

	line, err = createLine(o, "iope", ",")
	require.NoError(t, err)
	assert.Equal(t, "abc,catalogA,0.00 USD,2026-02-19 16:00", line)

	_, err = createLine(o, "tx", " ")
	assert.Error(t, err)
}

func TestPrintOffersTxt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOffers(&buf, sampleList(), "txt", "ts", "|"))
	assert.Equal(t, "Hollow Knight|free-now\nCounter-Strike|paid\n", buf.String())
}

func TestPrintOffersJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOffers(&buf, sampleList(), "JSON", "", ""))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "free-now", got[0]["classification"])
	assert.Equal(t, "catalogB", got[1]["source"])
	assert.Nil(t, got[1]["price"])
}

func TestPrintOffersJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOffers(&buf, nil, "json", "", ""))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestPrintOffersYAMLUsesJSONKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOffers(&buf, sampleList(), "yaml", "", ""))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "https://store.epicgames.com/p/hollow-knight", got[0]["externalUrl"])
	assert.Contains(t, got[0], "promotionWindows")
}

func TestPrintOffersTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOffers(&buf, sampleList(), "", "", ""))
	out := buf.String()
	assert.Contains(t, out, "Hollow Knight")
	assert.Contains(t, out, "7d 4h")
	assert.Contains(t, strings.ToLower(out), "2 offers")
}

func TestPrintOffersUnknownFormat(t *testing.T) {
	assert.Error(t, printOffers(&bytes.Buffer{}, nil, "xml", "", ""))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "-", formatPrice(nil))
	assert.Equal(t, "4.50", formatPrice(&offers.Price{DiscountedAmount: 4.5}))
	assert.Equal(t, "-", formatEnd(offers.Offer{PromotionWindows: []offers.Window{{DiscountPercent: 50, EndTime: time.Now()}}}))
	assert.Equal(t, "-", formatRemaining(nil))
}
