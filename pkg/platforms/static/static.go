// Package static is a vendor client that serves canned records, for tests.
package static

import (
	"context"
	"time"

	"github.com/freegames-hub/freegames/pkg/offers"
)

type Client struct {
	Source offers.Source
	Bodies []string
	Now    func() time.Time
}

func New(src offers.Source, bodies ...string) *Client {
	return &Client{Source: src, Bodies: bodies}
}

func (c *Client) Name() offers.Source { return c.Source }

func (c *Client) FetchRaw(ctx context.Context) []offers.VendorRecord {
	if ctx.Err() != nil {
		return nil
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	fetchedAt := now().UTC()
	out := make([]offers.VendorRecord, 0, len(c.Bodies))
	for _, b := range c.Bodies {
		out = append(out, offers.VendorRecord{Source: c.Source, Body: b, FetchedAt: fetchedAt})
	}
	return out
}
