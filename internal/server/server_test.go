package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freegames-hub/freegames/internal/metrics"
	"github.com/freegames-hub/freegames/pkg/aggregate"
	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
	"github.com/freegames-hub/freegames/pkg/platforms/static"
)

var now = time.Date(2026, 2, 12, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, user, pass string) *Server {
	t.Helper()
	reg := metrics.NewRegistry()
	agg := aggregate.New(aggregate.Config{
		Clients: []platforms.Client{
			static.New(offers.SourceCatalogB,
				`{"id":1,"name":"Zed Paid","original_price":1999,"final_price":1999}`,
				`{"id":2,"name":"Alpha Free","original_price":1999,"final_price":0}`,
			),
			static.New(offers.SourceGiveawayAggregator, `{"id":3,"title":"Beta Giveaway","worth":"$5.00"}`),
		},
		Enabled: map[offers.Source]bool{
			offers.SourceCatalogB:           true,
			offers.SourceGiveawayAggregator: true,
		},
		Recorder: reg,
		Now:      func() time.Time { return now },
	})
	return New(agg, reg.Handler(), user, pass, nil)
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(newTestServer(t, "", ""), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOffers(t *testing.T) {
	s := newTestServer(t, "", "")
	rec := get(s, "/api/offers?state=free-now&sort=title-ascending")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var batch aggregate.Batch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	require.Len(t, batch.Offers, 2)
	assert.Equal(t, "Alpha Free", batch.Offers[0].Title)
	assert.Equal(t, "Beta Giveaway", batch.Offers[1].Title)
	assert.Equal(t, offers.StateFreeNow, batch.Offers[1].Classification)
	assert.Nil(t, batch.Offers[1].RemainingDuration)
	assert.Len(t, batch.Sources, 2)
}

func TestOffersJSONShape(t *testing.T) {
	rec := get(newTestServer(t, "", ""), "/api/offers?source=gamerpower")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Offers []map[string]json.RawMessage `json:"offers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Offers, 1)
	for _, key := range []string{"id", "source", "title", "images", "price", "promotionWindows", "externalUrl", "classification", "remainingDuration"} {
		assert.Contains(t, body.Offers[0], key)
	}
	assert.Equal(t, "null", string(body.Offers[0]["remainingDuration"]))
	assert.Equal(t, "[]", string(body.Offers[0]["promotionWindows"]))
}

func TestOffersFilters(t *testing.T) {
	s := newTestServer(t, "", "")
	tests := []struct {
		query string
		want  []string
	}{
		{"/api/offers?source=steam&sort=title-desc", []string{"Zed Paid", "Alpha Free"}},
		{"/api/offers?source=catalogB,gamerpower&q=beta", []string{"Beta Giveaway"}},
		{"/api/offers?state=paid", []string{"Zed Paid"}},
		{"/api/offers?sort=title-asc&limit=1", []string{"Alpha Free"}},
	}
	for _, tt := range tests {
		rec := get(s, tt.query)
		require.Equal(t, http.StatusOK, rec.Code, tt.query)
		var batch aggregate.Batch
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
		var got []string
		for _, o := range batch.Offers {
			got = append(got, o.Title)
		}
		assert.Equal(t, tt.want, got, tt.query)
	}
}

func TestOffersInvalidOptions(t *testing.T) {
	s := newTestServer(t, "", "")
	for _, q := range []string{
		"/api/offers?sort=popularity",
		"/api/offers?limit=-1",
		"/api/offers?limit=ten",
		"/api/offers?state=cheap",
		"/api/offers?source=gog",
	} {
		rec := get(s, q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Contains(t, rec.Body.String(), `"error"`, q)
	}
}

func TestSourcesAndMetrics(t *testing.T) {
	s := newTestServer(t, "", "")

	rec := get(s, "/api/sources")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
	  {"source":"catalogB","enabled":true,"fetched":0,"dropped":0},
	  {"source":"giveawayAggregator","enabled":true,"fetched":0,"dropped":0}
	]`, rec.Body.String())

	get(s, "/api/offers")
	rec = get(s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `freegames_offers_classified_total{state="free-now"} 2`)
}

func TestBasicAuth(t *testing.T) {
	s := newTestServer(t, "admin", "secret")

	rec := get(s, "/api/offers")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/sources", nil)
	req.SetBasicAuth("admin", "secret")
	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// health stays public
	assert.Equal(t, http.StatusOK, get(s, "/health").Code)
}
