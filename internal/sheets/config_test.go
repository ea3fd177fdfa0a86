package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verocta-ai/spendscore/internal/common"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("service account", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ServiceAccountPath = "/etc/spendscore/sa.json"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("oauth credentials", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ClientID = "id"
		cfg.ClientSecret = "secret"
		cfg.RefreshToken = "token"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("no credentials", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.ErrorIs(t, cfg.Validate(), common.ErrMissingConfig)
	})

	t.Run("both credential methods", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ServiceAccountPath = "/etc/spendscore/sa.json"
		cfg.ClientID = "id"
		cfg.ClientSecret = "secret"
		cfg.RefreshToken = "token"
		assert.Error(t, cfg.Validate())
	})

	t.Run("incomplete oauth trio", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ClientID = "id"
		assert.ErrorIs(t, cfg.Validate(), common.ErrMissingConfig)
	})

	t.Run("nonpositive retries", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ServiceAccountPath = "/etc/spendscore/sa.json"
		cfg.RetryAttempts = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("SPENDSCORE_SHEETS_SERVICE_ACCOUNT_PATH", "/tmp/sa.json")
	t.Setenv("SPENDSCORE_SHEETS_SPREADSHEET_ID", "sheet-123")
	t.Setenv("SPENDSCORE_SHEETS_SPREADSHEET_NAME", "")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "/tmp/sa.json", cfg.ServiceAccountPath)
	assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
	assert.Equal(t, "SpendScore Report", cfg.SpreadsheetName, "name defaults when unset")
}
