// Package sheets provides Google Sheets export for scored reports.
package sheets

import (
	"fmt"
	"os"
	"time"

	"github.com/verocta-ai/spendscore/internal/common"
)

// Config holds the configuration for the Google Sheets exporter.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TimeZone:      "America/New_York",
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv loads credentials and spreadsheet settings from environment
// variables.
func (c *Config) LoadFromEnv() error {
	c.ClientID = os.Getenv("SPENDSCORE_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("SPENDSCORE_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("SPENDSCORE_SHEETS_REFRESH_TOKEN")
	c.ServiceAccountPath = os.Getenv("SPENDSCORE_SHEETS_SERVICE_ACCOUNT_PATH")
	c.SpreadsheetID = os.Getenv("SPENDSCORE_SHEETS_SPREADSHEET_ID")
	c.SpreadsheetName = os.Getenv("SPENDSCORE_SHEETS_SPREADSHEET_NAME")

	if c.SpreadsheetName == "" {
		c.SpreadsheetName = "SpendScore Report"
	}

	return c.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: provide either a service account path or OAuth2 credentials for Google Sheets", common.ErrMissingConfig)
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	}

	if c.RetryAttempts <= 0 {
		return fmt.Errorf("retry attempts must be positive")
	}

	return nil
}
