package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verocta-ai/spendscore/internal/report"
)

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Work with stored reports",
	}

	cmd.AddCommand(reportsListCmd())
	cmd.AddCommand(reportsShowCmd())

	return cmd
}

func reportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summaries, err := store.ListReports(cmd.Context())
			if err != nil {
				return err
			}

			if len(summaries) == 0 {
				fmt.Println("No stored reports.")
				return nil
			}

			fmt.Printf("%-38s %-20s %-6s %-10s %-10s %s\n",
				"ID", "Created", "Score", "Level", "Confidence", "Source")
			for _, s := range summaries {
				level := string(s.Level)
				if s.Degraded {
					level += " (degraded)"
				}
				fmt.Printf("%-38s %-20s %-6d %-10s %-10.2f %s\n",
					s.ID,
					s.CreatedAt.Format("2006-01-02 15:04"),
					s.Score,
					level,
					s.Confidence,
					s.SourceFile)
			}
			return nil
		},
	}
}

func reportsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stored, err := store.GetReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(report.NewCLIFormatter().FormatResult(stored.Result))
			return nil
		},
	}
}
