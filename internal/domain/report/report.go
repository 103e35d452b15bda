// Package report projects match results into a donor-ordered digest and
// writes it as XLSX or CSV for the fundraising team.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/match"
)

// DigestRow is the export projection of one match row.
type DigestRow struct {
	DonorID     string `csv:"donor_id"`
	DonorName   string `csv:"donor_name"`
	InsiderName string `csv:"insider_name"`
	Score       int    `csv:"score"`
	Status      string `csv:"status"`
	Issuer      string `csv:"issuer"`
	DateTx      string `csv:"date_tx"`
	Nature      string `csv:"nature"`
	Security    string `csv:"security"`
	QtyOrValue  string `csv:"qty_or_value"`
	TxID        string `csv:"tx_id"`
}

// DigestByDonor orders match rows by donor name ascending, then transaction
// date descending, so each donor's most recent activity reads first.
func DigestByDonor(matches []match.Result) []DigestRow {
	rows := make([]DigestRow, len(matches))
	for i, m := range matches {
		rows[i] = DigestRow{
			DonorID:     m.DonorID,
			DonorName:   m.DonorName,
			InsiderName: m.InsiderName,
			Score:       m.Score,
			Status:      m.Status,
			Issuer:      m.Issuer,
			DateTx:      m.DateTx,
			Nature:      m.Nature,
			Security:    m.Security,
			QtyOrValue:  m.QtyOrValue,
			TxID:        m.TxID,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DonorName != rows[j].DonorName {
			return rows[i].DonorName < rows[j].DonorName
		}
		return rows[i].DateTx > rows[j].DateTx
	})
	return rows
}

// WriteCSV writes the digest as CSV.
func WriteCSV(w io.Writer, rows []DigestRow) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write digest csv: %w", err)
	}
	return nil
}

const sheetName = "Matches"

var xlsxHeaders = []any{
	"donor_id", "donor_name", "insider_name", "score", "status",
	"issuer", "date_tx", "nature", "security", "qty_or_value", "tx_id",
}

// WriteXLSX writes the digest as a single-sheet XLSX workbook.
func WriteXLSX(w io.Writer, rows []DigestRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeaders); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		values := []any{
			r.DonorID, r.DonorName, r.InsiderName, r.Score, r.Status,
			r.Issuer, r.DateTx, r.Nature, r.Security, r.QtyOrValue, r.TxID,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
