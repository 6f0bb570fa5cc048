package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
	"github.com/freegames-hub/freegames/pkg/platforms/epic"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg := FromViper(v)

	assert.True(t, cfg.Epic.Enabled)
	assert.Equal(t, epic.DefaultURL, cfg.Epic.URL)
	assert.Equal(t, platforms.DefaultTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, DefaultListen, cfg.Server.Listen)
	assert.Empty(t, cfg.Server.Username)
	assert.Equal(t, map[offers.Source]bool{
		offers.SourceCatalogA:           true,
		offers.SourceCatalogB:           true,
		offers.SourceGiveawayAggregator: true,
	}, cfg.Enabled())
}

func TestFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freegames.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
epic:
  enabled: false
  locale: fr-FR
steam:
  country: de
gamerpower:
  type: loot
http:
  timeout: 3s
  useragent: test-agent
server:
  listen: ":9999"
  username: admin
  password: hunter2
`), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := FromViper(v)
	assert.False(t, cfg.Epic.Enabled)
	assert.Equal(t, "fr-FR", cfg.Epic.Locale)
	assert.Equal(t, epic.DefaultCountry, cfg.Epic.Country)
	assert.Equal(t, "de", cfg.Steam.Country)
	assert.Equal(t, "loot", cfg.GamerPower.Type)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "test-agent", cfg.HTTP.UserAgent)
	assert.Equal(t, Server{Listen: ":9999", Username: "admin", Password: "hunter2"}, cfg.Server)
	assert.False(t, cfg.Enabled()[offers.SourceCatalogA])

	clients := cfg.Clients(platforms.Deps{})
	require.Len(t, clients, 3)
	assert.Equal(t, offers.SourceCatalogA, clients[0].Name())
	assert.Equal(t, offers.SourceGiveawayAggregator, clients[2].Name())
}

func TestNonPositiveTimeoutFallsBack(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("http.timeout", "0s")
	assert.Equal(t, platforms.DefaultTimeout, FromViper(v).HTTP.Timeout)
}
