package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/verocta-ai/spendscore/internal/common"
	"github.com/verocta-ai/spendscore/internal/model"
	"github.com/verocta-ai/spendscore/internal/storage"
)

// Writer exports scored reports to Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets exporter.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Export writes one scored report to the configured spreadsheet, replacing
// any previous contents.
func (w *Writer) Export(ctx context.Context, report *storage.Report) error {
	w.logger.Info("starting sheets export",
		"report_id", report.ID,
		"score", report.Result.Score,
		"source_file", report.SourceFile)

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := w.prepareReportData(report)

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		_, writeErr := w.service.Spreadsheets.Values.Update(spreadsheetID, "A1", &sheets.ValueRange{
			Values: values,
		}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		return writeErr
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write report data: %w", err)
	}

	w.logger.Info("sheets export complete",
		"spreadsheet_id", spreadsheetID,
		"rows", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets the configured spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "SpendScore",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData lays a scored report out as spreadsheet rows.
func (w *Writer) prepareReportData(report *storage.Report) [][]any {
	result := report.Result

	estimatedRows := 20 + len(result.Insights.CategoryInsights) +
		len(result.Waste.WasteCategories) + len(result.Benchmarks) + len(result.Recommendations)
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{"SpendScore Report", report.SourceFile, report.CreatedAt.Format("Jan 2, 2006")},
		[]any{},
		[]any{"Score", result.Score},
		[]any{"Level", result.Label},
		[]any{"Confidence", result.Confidence},
		[]any{"Total Analyzed", result.Metrics.TotalAmount.InexactFloat64()},
		[]any{"Transactions", result.Metrics.TransactionCount},
		[]any{"Estimated Waste", result.Waste.TotalWasteDetected.InexactFloat64()},
		[]any{"Waste %", result.Waste.WastePercentage},
		[]any{},
		[]any{"Category Breakdown"},
		[]any{"Category", "Total", "Transactions", "% of Total"},
	)

	for _, name := range sortedBySpend(result.Insights.CategoryInsights) {
		ci := result.Insights.CategoryInsights[name]
		values = append(values, []any{
			name,
			ci.TotalSpent.InexactFloat64(),
			ci.TransactionCount,
			ci.PercentageOfTotal,
		})
	}

	if len(result.Benchmarks) > 0 {
		values = append(values,
			[]any{},
			[]any{"Industry Benchmarks"},
			[]any{"Category", "Actual", "Optimal", "Status"},
		)
		for _, b := range result.Benchmarks {
			values = append(values, []any{b.Category, b.Actual, b.Optimal, string(b.Status)})
		}
	}

	if len(result.Recommendations) > 0 {
		values = append(values,
			[]any{},
			[]any{"Recommendations"},
			[]any{"Priority", "Title", "Description"},
		)
		for _, rec := range result.Recommendations {
			values = append(values, []any{string(rec.Priority), rec.Title, rec.Description})
		}
	}

	return values
}

func sortedBySpend(insights map[string]model.CategoryInsight) []string {
	names := make([]string, 0, len(insights))
	for name := range insights {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := insights[names[i]], insights[names[j]]
		if a.TotalSpent.Equal(b.TotalSpent) {
			return names[i] < names[j]
		}
		return a.TotalSpent.GreaterThan(b.TotalSpent)
	})
	return names
}
