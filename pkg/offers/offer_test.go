package offers

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestRemainingFrom(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want Remaining
	}{
		{0, Remaining{}},
		{59 * time.Minute, Remaining{}},
		{25*time.Hour + 59*time.Minute, Remaining{Days: 1, Hours: 1}},
		{48 * time.Hour, Remaining{Days: 2}},
		{-time.Hour, Remaining{}},
	}
	for _, tt := range tests {
		if got := RemainingFrom(tt.d); *got != tt.want {
			t.Fatalf("RemainingFrom(%s) = %+v, want %+v", tt.d, *got, tt.want)
		}
	}
}

func TestParseSource(t *testing.T) {
	for in, want := range map[string]Source{
		"catalogA":           SourceCatalogA,
		"EPIC":               SourceCatalogA,
		"steam":              SourceCatalogB,
		" gamerpower ":       SourceGiveawayAggregator,
		"giveawayAggregator": SourceGiveawayAggregator,
	} {
		got, ok := ParseSource(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseSource("gog")
	assert.False(t, ok)

	assert.True(t, SourceCatalogB.Valid())
	assert.False(t, Source("steam").Valid())
}

func TestParseState(t *testing.T) {
	st, ok := ParseState("FREE_NOW")
	assert.True(t, ok)
	assert.Equal(t, StateFreeNow, st)

	_, ok = ParseState("cheap")
	assert.False(t, ok)
}

func TestOfferHelpers(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o := Offer{ID: "42", Source: SourceCatalogB, PromotionWindows: []Window{
		{StartTime: base.Add(48 * time.Hour), EndTime: base.Add(72 * time.Hour)},
		{StartTime: base, EndTime: base.Add(time.Hour)},
	}}
	assert.Equal(t, "catalogB|42", o.Key())

	earliest, ok := o.Earliest()
	assert.True(t, ok)
	assert.Equal(t, base, earliest)

	_, ok = Offer{}.Earliest()
	assert.False(t, ok)

	assert.False(t, o.FreeOverride())
	o.IsFreeOverride = Bool(true)
	assert.True(t, o.FreeOverride())
}

func TestErrorMarks(t *testing.T) {
	err := VendorUnavailable(errors.New("connection refused"), SourceCatalogA)
	assert.True(t, errors.Is(err, ErrVendorUnavailable))
	assert.Contains(t, err.Error(), "fetching catalogA")

	err = MalformedRecord(SourceCatalogB, "missing %s", "id")
	assert.True(t, errors.Is(err, ErrMalformedRecord))
	assert.Equal(t, "catalogB: missing id", err.Error())

	err = errors.Wrap(InvalidOptions("unknown sort %q", "size"), "aggregate")
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	assert.False(t, errors.Is(err, ErrMalformedRecord))
}
