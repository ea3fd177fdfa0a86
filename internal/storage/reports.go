package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verocta-ai/spendscore/internal/common"
	"github.com/verocta-ai/spendscore/internal/model"
)

// Report is a scored result together with its run context.
type Report struct {
	CreatedAt   time.Time
	Result      *model.ScoreResult
	ID          string
	SourceFile  string
	Industry    string
	CompanySize string
}

// ReportSummary is the listing view of a stored report, without the full
// result payload.
type ReportSummary struct {
	CreatedAt  time.Time
	ID         string
	SourceFile string
	Level      model.ScoreLevel
	Score      int
	Confidence float64
	Degraded   bool
}

// SaveReport persists a scored report, assigning an ID when none is set.
// It returns the report ID.
func (s *SQLiteStorage) SaveReport(ctx context.Context, report *Report) (string, error) {
	if report == nil || report.Result == nil {
		return "", fmt.Errorf("report and result must not be nil")
	}

	if report.ID == "" {
		report.ID = uuid.NewString()
	}

	payload, err := json.Marshal(report.Result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, source_file, industry, company_size, score, level, confidence, degraded, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.SourceFile,
		report.Industry,
		report.CompanySize,
		report.Result.Score,
		string(report.Result.Level),
		report.Result.Confidence,
		report.Result.Degraded,
		string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return report.ID, nil
}

// GetReport loads a stored report by ID.
func (s *SQLiteStorage) GetReport(ctx context.Context, id string) (*Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_file, industry, company_size, result_json, created_at
		 FROM reports WHERE id = ?`, id)

	var report Report
	var payload string
	err := row.Scan(&report.ID, &report.SourceFile, &report.Industry,
		&report.CompanySize, &payload, &report.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	report.Result = &model.ScoreResult{}
	if err := json.Unmarshal([]byte(payload), report.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &report, nil
}

// ListReports returns summaries of stored reports, newest first.
func (s *SQLiteStorage) ListReports(ctx context.Context) ([]ReportSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_file, score, level, confidence, degraded, created_at
		 FROM reports ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []ReportSummary
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.SourceFile, &s.Score, &s.Level,
			&s.Confidence, &s.Degraded, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return summaries, nil
}
