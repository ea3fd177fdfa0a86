package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/verocta-ai/spendscore/internal/common"
	"github.com/verocta-ai/spendscore/internal/config"
	"github.com/verocta-ai/spendscore/internal/ingest"
	"github.com/verocta-ai/spendscore/internal/report"
	"github.com/verocta-ai/spendscore/internal/score"
	"github.com/verocta-ai/spendscore/internal/storage"
)

func scoreCmd() *cobra.Command {
	var (
		industry    string
		companySize string
		save        bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "score <file>",
		Short: "Score a transaction file (CSV, OFX, QFX)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), args[0], score.Options{
				Industry:    industry,
				CompanySize: companySize,
			}, save, asJSON)
		},
	}

	cmd.Flags().StringVar(&industry, "industry", "general", "industry key for benchmark comparison")
	cmd.Flags().StringVar(&companySize, "company-size", "small", "company size (small, medium, large, enterprise)")
	cmd.Flags().BoolVar(&save, "save", false, "persist the scored report")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw result as JSON")

	return cmd
}

func runScore(ctx context.Context, path string, opts score.Options, save, asJSON bool) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	records, err := ingest.ReadFile(path)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not read transaction file %s", path), err)
	}

	result := engine.Calculate(ctx, records, opts)

	if save {
		store, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		id, err := store.SaveReport(ctx, &storage.Report{
			SourceFile:  path,
			Industry:    opts.Industry,
			CompanySize: opts.CompanySize,
			Result:      result,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved report %s\n", id)
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Println(report.NewCLIFormatter().FormatResult(result))
	return nil
}

// buildEngine constructs the scoring engine from viper-backed tables.
func buildEngine() (*score.Engine, error) {
	tables, err := config.LoadTables(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return score.NewEngine(tables)
}

// openStorage opens the report database and brings its schema up to date.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}
