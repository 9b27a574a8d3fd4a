package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"flathunter-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validHunt = `
urls:
  - https://www.immobilienscout24.de/Suche/de/berlin/berlin/wohnung-mieten?sorting=2
max_pages: 2
filters:
  max_price: 1200
  min_rooms: 2
  excluded_titles: ["tausch"]
telegram:
  receiver_ids: [12345]
durations:
  - name: Work
    destination: Alexanderplatz, Berlin
    modes: [transit, bicycling]
`

func TestParseHuntConfig(t *testing.T) {
	cfg, err := ParseHuntConfig([]byte(validHunt))
	require.NoError(t, err)

	assert.Len(t, cfg.URLs, 1)
	assert.Equal(t, 2, cfg.MaxPages)
	require.NotNil(t, cfg.Filters.MaxPrice)
	assert.Equal(t, 1200.0, *cfg.Filters.MaxPrice)
	assert.Nil(t, cfg.Filters.MinPrice)
	assert.Equal(t, []int64{12345}, cfg.Telegram.ReceiverIDs)
	assert.Equal(t, DefaultMessageTemplate, cfg.Message)

	dests := cfg.Destinations()
	require.Len(t, dests, 1)
	assert.Equal(t, []domain.TravelMode{domain.TravelModeTransit, domain.TravelModeBicycling}, dests[0].Modes)
}

func TestParseHuntConfigRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no urls", "max_pages: 1\n"},
		{"empty urls", "urls: []\n"},
		{"negative pages", "urls: [https://example.com/a]\nmax_pages: -1\n"},
		{"unknown travel mode", "urls: [https://example.com/a]\ndurations:\n  - {name: w, destination: x, modes: [teleport]}\n"},
		{"receiver id is not a number", "urls: [https://example.com/a]\ntelegram:\n  receiver_ids: [abc]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHuntConfig([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigReadsEnvironmentAndHuntFile(t *testing.T) {
	dir := t.TempDir()
	huntPath := filepath.Join(dir, "hunt.yaml")
	require.NoError(t, os.WriteFile(huntPath, []byte("urls: [https://example.com/search]\n"), 0o600))

	t.Setenv("HUNT_CONFIG_PATH", huntPath)
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("HUNT_INTERVAL", "90s")
	t.Setenv("FETCHER", "colly")

	cfg, err := LoadConfig(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 90*time.Second, cfg.HuntInterval)
	assert.Equal(t, []string{"https://example.com/search"}, cfg.Hunt.URLs)
}

func TestLoadConfigRequiresDatabaseURLForPostgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "DATABASE_URL")
}
