package steam

import (
	"context"
	"net/url"

	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
)

const (
	DefaultURL      = "https://store.steampowered.com/api/featuredcategories"
	DefaultCountry  = "us"
	DefaultLanguage = "english"

	elementsPath = "specials.items"
)

type Options struct {
	Country  string
	Language string
}

// Client reads the storefront's featured specials.
type Client struct {
	cfg     platforms.Config
	fetcher *platforms.Fetcher
}

func NewClient(cfg platforms.Config, opts Options, deps platforms.Deps) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if opts.Country == "" {
		opts.Country = DefaultCountry
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	q := url.Values{}
	for k, vs := range cfg.Query {
		q[k] = vs
	}
	q.Set("cc", opts.Country)
	q.Set("l", opts.Language)
	cfg.Query = q
	return &Client{cfg: cfg, fetcher: platforms.NewFetcher(deps)}
}

func (c *Client) Name() offers.Source { return offers.SourceCatalogB }

func (c *Client) FetchRaw(ctx context.Context) []offers.VendorRecord {
	return c.fetcher.FetchRecords(ctx, platforms.Endpoint{
		Source:       offers.SourceCatalogB,
		Config:       c.cfg,
		ElementsPath: elementsPath,
	})
}
