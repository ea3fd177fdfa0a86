package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/verocta-ai/spendscore/internal/common"
	"github.com/verocta-ai/spendscore/internal/ingest"
	"github.com/verocta-ai/spendscore/internal/score"
	"github.com/verocta-ai/spendscore/internal/storage"
)

func batchCmd() *cobra.Command {
	var (
		industry    string
		companySize string
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Score every supported transaction file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), args[0], score.Options{
				Industry:    industry,
				CompanySize: companySize,
			})
		},
	}

	cmd.Flags().StringVar(&industry, "industry", "general", "industry key for benchmark comparison")
	cmd.Flags().StringVar(&companySize, "company-size", "small", "company size (small, medium, large, enterprise)")

	return cmd
}

func runBatch(ctx context.Context, dir string, opts score.Options) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !ingest.SupportedFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return fmt.Errorf("no supported transaction files in %s", dir)
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Scoring files..."),
	)

	type row struct {
		file  string
		id    string
		score int
		level string
	}
	var rows []row

	for _, file := range files {
		records, err := ingest.ReadFile(file)
		if err != nil {
			common.LogError(err, "skipping file", common.Fields{"file": file})
			_ = bar.Add(1)
			continue
		}

		result := engine.Calculate(ctx, records, opts)

		id, err := store.SaveReport(ctx, &storage.Report{
			SourceFile:  file,
			Industry:    opts.Industry,
			CompanySize: opts.CompanySize,
			Result:      result,
		})
		if err != nil {
			return err
		}

		rows = append(rows, row{
			file:  filepath.Base(file),
			id:    id,
			score: result.Score,
			level: result.Label,
		})
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	fmt.Printf("%-30s %-38s %-6s %s\n", "File", "Report ID", "Score", "Level")
	for _, r := range rows {
		fmt.Printf("%-30s %-38s %-6d %s\n", r.file, r.id, r.score, r.level)
	}

	return nil
}
