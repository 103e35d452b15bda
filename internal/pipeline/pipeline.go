// Package pipeline orchestrates a full monitoring run: PDF extraction
// followed by donor matching. Runs are stateless; the titles and nickname
// tables are loaded once and reused read-only across runs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/extract"
	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/match"
	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/roster"
)

// Service runs the extract-and-match pipeline.
type Service struct {
	titles     match.TitleSet
	nicknames  match.Nicknames
	thresholds match.Thresholds
	logger     *slog.Logger
}

// New creates a pipeline service.
func New(titles match.TitleSet, nicknames match.Nicknames, thresholds match.Thresholds, logger *slog.Logger) *Service {
	return &Service{
		titles:     titles,
		nicknames:  nicknames,
		thresholds: thresholds,
		logger:     logger,
	}
}

// RunResult is the output of one pipeline run.
type RunResult struct {
	RunID        uuid.UUID
	Transactions []extract.Transaction
	Matches      []match.Result
	Duration     time.Duration
}

// Run extracts transactions from the PDF and matches them against the donor
// roster. An unreadable PDF fails the run; empty extraction or an empty
// roster degrades to empty or low-confidence results.
func (s *Service) Run(ctx context.Context, pdfBytes []byte, donors []roster.Donor) (*RunResult, error) {
	runID := uuid.New()
	start := time.Now()

	s.logger.Info("starting run",
		slog.String("run_id", runID.String()),
		slog.Int("pdf_bytes", len(pdfBytes)),
		slog.Int("donors", len(donors)))

	transactions, err := extract.ParseWeeklySummary(pdfBytes)
	if err != nil {
		s.logger.Error("pdf extraction failed", slog.String("run_id", runID.String()), slog.Any("error", err))
		return nil, fmt.Errorf("extract transactions: %w", err)
	}
	s.logger.Info("extracted transactions",
		slog.String("run_id", runID.String()),
		slog.Int("transactions", len(transactions)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches := match.MatchTransactions(transactions, donors, s.titles, s.nicknames, s.thresholds)

	result := &RunResult{
		RunID:        runID,
		Transactions: transactions,
		Matches:      matches,
		Duration:     time.Since(start),
	}
	s.logger.Info("run complete",
		slog.String("run_id", runID.String()),
		slog.Int("matches", len(matches)),
		slog.Duration("duration", result.Duration))
	return result, nil
}
