package gamerpower

import (
	"context"
	"net/url"

	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
)

const (
	DefaultURL  = "https://www.gamerpower.com/api/giveaways"
	DefaultType = "game"
)

type Options struct {
	// Type is the giveaway type filter: game, loot or beta.
	Type string
	// Platform optionally narrows listings, e.g. "pc" or "epic-games-store".
	Platform string
}

// Client reads the giveaway listings. The endpoint returns a bare array.
type Client struct {
	cfg     platforms.Config
	fetcher *platforms.Fetcher
}

func NewClient(cfg platforms.Config, opts Options, deps platforms.Deps) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if opts.Type == "" {
		opts.Type = DefaultType
	}
	q := url.Values{}
	for k, vs := range cfg.Query {
		q[k] = vs
	}
	q.Set("type", opts.Type)
	if opts.Platform != "" {
		q.Set("platform", opts.Platform)
	}
	cfg.Query = q
	return &Client{cfg: cfg, fetcher: platforms.NewFetcher(deps)}
}

func (c *Client) Name() offers.Source { return offers.SourceGiveawayAggregator }

func (c *Client) FetchRaw(ctx context.Context) []offers.VendorRecord {
	return c.fetcher.FetchRecords(ctx, platforms.Endpoint{
		Source: offers.SourceGiveawayAggregator,
		Config: c.cfg,
	})
}
