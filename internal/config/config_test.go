// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.StorageBackend)

	l := cfg.Loyalty
	assert.Equal(t, int64(100), l.WelcomePoints)
	assert.True(t, l.WelcomePromotionEnabled)
	assert.Equal(t, 30, l.WelcomePromotionDays)
	assert.Equal(t, 0.1, l.PointsPerCurrencyUnit)
	assert.Equal(t, 50000.0, l.VIPSpendThreshold)
	assert.Equal(t, int64(20), l.FrequentVisitThreshold)
	assert.Equal(t, int64(5), l.RegularVisitThreshold)
	assert.False(t, l.WithdrawalsDebitBalance)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Memory")
	t.Setenv("WELCOME_POINTS", "250")
	t.Setenv("WITHDRAWALS_DEBIT_BALANCE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, int64(250), cfg.Loyalty.WelcomePoints)
	assert.True(t, cfg.Loyalty.WithdrawalsDebitBalance)
}

func TestLoadYAMLFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loyalty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vip_spend_threshold: 75000\nregular_visit_threshold: 3\n"), 0o644))
	t.Setenv("LOYALTY_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 75000.0, cfg.Loyalty.VIPSpendThreshold)
	assert.Equal(t, int64(3), cfg.Loyalty.RegularVisitThreshold)
	assert.Equal(t, int64(100), cfg.Loyalty.WelcomePoints, "unlisted keys keep their env defaults")
}

func TestLoadYAMLFileMissing(t *testing.T) {
	t.Setenv("LOYALTY_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
