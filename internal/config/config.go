// Package config turns viper settings into the typed configuration used to
// build vendor clients, the aggregator and the HTTP server.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
	"github.com/freegames-hub/freegames/pkg/platforms/epic"
	"github.com/freegames-hub/freegames/pkg/platforms/gamerpower"
	"github.com/freegames-hub/freegames/pkg/platforms/steam"
)

type Epic struct {
	Enabled bool
	URL     string
	Locale  string
	Country string
}

type Steam struct {
	Enabled  bool
	URL      string
	Country  string
	Language string
}

type GamerPower struct {
	Enabled  bool
	URL      string
	Type     string
	Platform string
}

type HTTP struct {
	Timeout   time.Duration
	UserAgent string
	Proxy     string
}

type Config struct {
	Epic       Epic
	Steam      Steam
	GamerPower GamerPower
	HTTP       HTTP
	Server     Server
	DBPath     string
}

// Server holds the listen address and the optional basic auth pair for /api.
type Server struct {
	Listen   string
	Username string
	Password string
}

const DefaultListen = "127.0.0.1:8080"

// SetDefaults registers every key with its default so a freshly written
// config file lists them all.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("epic.enabled", true)
	v.SetDefault("epic.url", epic.DefaultURL)
	v.SetDefault("epic.locale", epic.DefaultLocale)
	v.SetDefault("epic.country", epic.DefaultCountry)
	v.SetDefault("steam.enabled", true)
	v.SetDefault("steam.url", steam.DefaultURL)
	v.SetDefault("steam.country", steam.DefaultCountry)
	v.SetDefault("steam.language", steam.DefaultLanguage)
	v.SetDefault("gamerpower.enabled", true)
	v.SetDefault("gamerpower.url", gamerpower.DefaultURL)
	v.SetDefault("gamerpower.type", gamerpower.DefaultType)
	v.SetDefault("gamerpower.platform", "")
	v.SetDefault("http.timeout", platforms.DefaultTimeout)
	v.SetDefault("http.useragent", "")
	v.SetDefault("server.listen", DefaultListen)
	v.SetDefault("server.username", "")
	v.SetDefault("server.password", "")
	v.SetDefault("db.path", "")
}

func FromViper(v *viper.Viper) Config {
	timeout := v.GetDuration("http.timeout")
	if timeout <= 0 {
		timeout = platforms.DefaultTimeout
	}
	return Config{
		Epic: Epic{
			Enabled: v.GetBool("epic.enabled"),
			URL:     v.GetString("epic.url"),
			Locale:  v.GetString("epic.locale"),
			Country: v.GetString("epic.country"),
		},
		Steam: Steam{
			Enabled:  v.GetBool("steam.enabled"),
			URL:      v.GetString("steam.url"),
			Country:  v.GetString("steam.country"),
			Language: v.GetString("steam.language"),
		},
		GamerPower: GamerPower{
			Enabled:  v.GetBool("gamerpower.enabled"),
			URL:      v.GetString("gamerpower.url"),
			Type:     v.GetString("gamerpower.type"),
			Platform: v.GetString("gamerpower.platform"),
		},
		HTTP: HTTP{
			Timeout:   timeout,
			UserAgent: v.GetString("http.useragent"),
			Proxy:     v.GetString("proxy"),
		},
		Server: Server{
			Listen:   v.GetString("server.listen"),
			Username: v.GetString("server.username"),
			Password: v.GetString("server.password"),
		},
		DBPath: v.GetString("db.path"),
	}
}

// Enabled is the explicit per-source switch handed to the aggregator.
func (c Config) Enabled() map[offers.Source]bool {
	return map[offers.Source]bool{
		offers.SourceCatalogA:           c.Epic.Enabled,
		offers.SourceCatalogB:           c.Steam.Enabled,
		offers.SourceGiveawayAggregator: c.GamerPower.Enabled,
	}
}

// Clients builds one vendor client per source. Disabled sources still get a
// client so they show up in source listings.
func (c Config) Clients(deps platforms.Deps) []platforms.Client {
	return []platforms.Client{
		epic.NewClient(
			platforms.Config{Enabled: c.Epic.Enabled, URL: c.Epic.URL, Timeout: c.HTTP.Timeout},
			epic.Options{Locale: c.Epic.Locale, Country: c.Epic.Country},
			deps,
		),
		steam.NewClient(
			platforms.Config{Enabled: c.Steam.Enabled, URL: c.Steam.URL, Timeout: c.HTTP.Timeout},
			steam.Options{Country: c.Steam.Country, Language: c.Steam.Language},
			deps,
		),
		gamerpower.NewClient(
			platforms.Config{Enabled: c.GamerPower.Enabled, URL: c.GamerPower.URL, Timeout: c.HTTP.Timeout},
			gamerpower.Options{Type: c.GamerPower.Type, Platform: c.GamerPower.Platform},
			deps,
		),
	}
}
