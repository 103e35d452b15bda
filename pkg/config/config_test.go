package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Matching.HighThreshold)
	assert.Equal(t, 80, cfg.Matching.ReviewThreshold)
	assert.Equal(t, "config/titles.txt", cfg.Files.TitlesPath)
	assert.Equal(t, "config/nicknames.json", cfg.Files.NicknamesPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD_HIGH", "95")
	t.Setenv("MATCH_THRESHOLD_REVIEW", "70")
	t.Setenv("TITLES_PATH", "/etc/sedi/titles.txt")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 95, cfg.Matching.HighThreshold)
	assert.Equal(t, 70, cfg.Matching.ReviewThreshold)
	assert.Equal(t, "/etc/sedi/titles.txt", cfg.Files.TitlesPath)
}
