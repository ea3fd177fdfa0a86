package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/verocta-ai/spendscore/internal/sheets"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <id>",
		Short: "Export a stored report to Google Sheets",
		Long: `Export a stored report to Google Sheets.

Credentials come from the environment: either
SPENDSCORE_SHEETS_SERVICE_ACCOUNT_PATH or the OAuth2 trio
SPENDSCORE_SHEETS_CLIENT_ID / _CLIENT_SECRET / _REFRESH_TOKEN, plus an
optional SPENDSCORE_SHEETS_SPREADSHEET_ID to reuse a spreadsheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stored, err := store.GetReport(ctx, args[0])
			if err != nil {
				return err
			}

			cfg := sheets.DefaultConfig()
			if err := cfg.LoadFromEnv(); err != nil {
				return err
			}

			writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
			if err != nil {
				return err
			}

			if err := writer.Export(ctx, stored); err != nil {
				return err
			}

			fmt.Printf("Exported report %s\n", stored.ID)
			return nil
		},
	}
}
