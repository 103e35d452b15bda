// Command sedi runs the SEDI insider monitor pipeline: it parses a weekly
// summary PDF, matches the filers against a donor roster, and writes a
// donor-ordered match report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/match"
	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/report"
	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/roster"
	"github.com/FACorreiaa/sedi-insider-monitor/internal/pipeline"
	"github.com/FACorreiaa/sedi-insider-monitor/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger); err != nil {
		logger.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// .env is optional
	_ = godotenv.Load()

	var (
		rosterPath = flag.String("roster", "", "donor roster file (.csv or .xlsx)")
		pdfPath    = flag.String("pdf", "", "SEDI weekly summary PDF")
		outPath    = flag.String("out", "matches.xlsx", "match report output (.xlsx or .csv)")
	)
	flag.Parse()
	if *rosterPath == "" || *pdfPath == "" {
		flag.Usage()
		return fmt.Errorf("both -roster and -pdf are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	titles, nicknames, err := loadReferenceData(cfg)
	if err != nil {
		return err
	}

	donors, err := loadRoster(*rosterPath)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	logger.Info("loaded donor roster", slog.String("path", *rosterPath), slog.Int("donors", len(donors)))

	pdfBytes, err := os.ReadFile(*pdfPath)
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}

	thresholds := match.Thresholds{
		High:   cfg.Matching.HighThreshold,
		Review: cfg.Matching.ReviewThreshold,
	}
	svc := pipeline.New(titles, nicknames, thresholds, logger)

	result, err := svc.Run(context.Background(), pdfBytes, donors)
	if err != nil {
		return err
	}

	if err := writeReport(*outPath, report.DigestByDonor(result.Matches)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written",
		slog.String("path", *outPath),
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("matches", len(result.Matches)))
	return nil
}

func loadReferenceData(cfg *config.Config) (match.TitleSet, match.Nicknames, error) {
	tf, err := os.Open(cfg.Files.TitlesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open titles file: %w", err)
	}
	defer tf.Close()
	titles, err := match.LoadTitles(tf)
	if err != nil {
		return nil, nil, fmt.Errorf("load titles: %w", err)
	}

	nf, err := os.Open(cfg.Files.NicknamesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open nicknames file: %w", err)
	}
	defer nf.Close()
	nicknames, err := match.LoadNicknames(nf)
	if err != nil {
		return nil, nil, fmt.Errorf("load nicknames: %w", err)
	}

	return titles, nicknames, nil
}

func loadRoster(path string) ([]roster.Donor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return roster.LoadXLSX(data)
	}
	return roster.LoadCSV(data)
}

func writeReport(path string, rows []report.DigestRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return report.WriteCSV(f, rows)
	}
	return report.WriteXLSX(f, rows)
}
