package epic

import (
	"context"
	"net/url"

	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
)

const (
	DefaultURL     = "https://store-site-backend-static.ak.epicgames.com/freeGamesPromotions"
	DefaultLocale  = "en-US"
	DefaultCountry = "US"

	elementsPath = "data.Catalog.searchStore.elements"
)

// Options are the query parameters the promotions endpoint understands.
type Options struct {
	Locale  string
	Country string
}

// Client reads the store's free games promotions feed.
type Client struct {
	cfg     platforms.Config
	fetcher *platforms.Fetcher
}

func NewClient(cfg platforms.Config, opts Options, deps platforms.Deps) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.Country == "" {
		opts.Country = DefaultCountry
	}
	q := url.Values{}
	for k, vs := range cfg.Query {
		q[k] = vs
	}
	q.Set("locale", opts.Locale)
	q.Set("country", opts.Country)
	q.Set("allowCountries", opts.Country)
	cfg.Query = q
	return &Client{cfg: cfg, fetcher: platforms.NewFetcher(deps)}
}

func (c *Client) Name() offers.Source { return offers.SourceCatalogA }

func (c *Client) FetchRaw(ctx context.Context) []offers.VendorRecord {
	return c.fetcher.FetchRecords(ctx, platforms.Endpoint{
		Source:       offers.SourceCatalogA,
		Config:       c.cfg,
		ElementsPath: elementsPath,
	})
}
