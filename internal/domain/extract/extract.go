// Package extract converts SEDI "Weekly Summary by Insider" PDFs into
// structured insider transaction records. Extraction is best effort: only a
// document-level parse failure is reported to the caller.
package extract

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Security classifications recognized on a transaction row, checked in
// priority order.
const (
	SecurityCommonShares = "Common Shares"
	SecurityWarrants     = "Warrants"
	SecurityOptions      = "Options"
)

// Transaction is one extracted insider transaction row. String fields are
// empty when the source line carried no recognizable value.
type Transaction struct {
	TxID                string `json:"tx_id" csv:"tx_id"`
	InsiderName         string `json:"insider_name" csv:"insider_name"`
	Issuer              string `json:"issuer" csv:"issuer"`
	Relationship        string `json:"relationship" csv:"relationship"`
	DateTx              string `json:"date_tx" csv:"date_tx"`
	Nature              string `json:"nature" csv:"nature"`
	Security            string `json:"security" csv:"security"`
	QtyOrValue          string `json:"qty_or_value" csv:"qty_or_value"`
	UnitOrExercisePrice string `json:"unit_or_exercise_price" csv:"unit_or_exercise_price"`
}

var (
	issuerRe   = regexp.MustCompile(`(?i)^Issuer:\s*(.+)$`)
	insiderRe  = regexp.MustCompile(`(?i)^Insider:\s*(.+)$`)
	relationRe = regexp.MustCompile(`(?i)^Insider['’]s Relationship to Issuer:\s*(.+)$`)
	txLineRe   = regexp.MustCompile(`^(\d{6,9})\s+(.*)$`)
	dateRe     = regexp.MustCompile(`20\d{2}-\d{2}-\d{2}`)
	qtyRe      = regexp.MustCompile(`[+-]?\d{1,3}(?:,\d{3})+`)
	natureRe   = regexp.MustCompile(`(\d{2}\s*-\s*[^\d]+)$`)
)

// ParseWeeklySummary extracts transaction records from the raw bytes of a
// SEDI weekly summary PDF. Pages are scanned independently; rows seen before
// the first "Insider:" header of a page are discarded. The result is
// deduplicated by (tx id, insider, issuer), first occurrence wins.
func ParseWeeklySummary(content []byte) ([]Transaction, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	var records []Transaction
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		records = append(records, scanLines(pageLines(page))...)
	}
	return dedupe(records), nil
}

// scanContext carries the header state established by previous lines of the
// same page.
type scanContext struct {
	issuer       string
	insider      string
	relationship string
}

// scanLines folds over the text lines of one page, updating the header
// context and emitting a record for every transaction row seen while an
// insider is in scope.
func scanLines(lines []string) []Transaction {
	var ctx scanContext
	var out []Transaction
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := issuerRe.FindStringSubmatch(line); m != nil {
			ctx.issuer = strings.TrimSpace(m[1])
			continue
		}
		if m := insiderRe.FindStringSubmatch(line); m != nil {
			ctx.insider = strings.TrimSpace(m[1])
			// each insider block starts a fresh relationship
			ctx.relationship = ""
			continue
		}
		if m := relationRe.FindStringSubmatch(line); m != nil {
			ctx.relationship = strings.TrimSpace(m[1])
			continue
		}

		m := txLineRe.FindStringSubmatch(line)
		if m == nil || ctx.insider == "" {
			continue
		}
		out = append(out, parseTxLine(m[1], m[2], ctx))
	}
	return out
}

func parseTxLine(txID, rest string, ctx scanContext) Transaction {
	tx := Transaction{
		TxID:         txID,
		InsiderName:  ctx.insider,
		Issuer:       ctx.issuer,
		Relationship: ctx.relationship,
	}

	tx.DateTx = dateRe.FindString(rest)

	switch {
	case strings.Contains(rest, SecurityCommonShares):
		tx.Security = SecurityCommonShares
	case strings.Contains(rest, SecurityWarrants):
		tx.Security = SecurityWarrants
	case strings.Contains(rest, SecurityOptions):
		tx.Security = SecurityOptions
	}

	tx.QtyOrValue = qtyRe.FindString(rest)

	if m := natureRe.FindStringSubmatch(rest); m != nil {
		tx.Nature = strings.TrimSpace(m[1])
	}
	return tx
}

// dedupe drops records repeating an already-seen (tx id, insider, issuer)
// triple, as produced by repeated page headers or overlapping text layers.
func dedupe(records []Transaction) []Transaction {
	type key struct {
		txID    string
		insider string
		issuer  string
	}
	seen := make(map[key]struct{}, len(records))
	out := make([]Transaction, 0, len(records))
	for _, r := range records {
		k := key{r.TxID, r.InsiderName, r.Issuer}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// rowTolerance is the Y-coordinate tolerance (in points) for grouping text
// fragments into one visual line.
const rowTolerance = 3.0

// pageLines reconstructs the text lines of a page: fragments bucketed into
// rows by Y coordinate, rows ordered top to bottom, fragments left to right.
func pageLines(page pdf.Page) []string {
	texts := page.Content().Text
	if len(texts) == 0 {
		return nil
	}

	type row struct {
		y     float64
		texts []pdf.Text
	}
	var rows []*row
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		var target *row
		for _, r := range rows {
			if math.Abs(r.y-t.Y) <= rowTolerance {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: t.Y}
			rows = append(rows, target)
		}
		target.texts = append(target.texts, t)
	}

	// PDF Y coordinates grow upward
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.texts, func(i, j int) bool { return r.texts[i].X < r.texts[j].X })

		var b strings.Builder
		for i, t := range r.texts {
			if i > 0 {
				prev := r.texts[i-1]
				gap := t.X - (prev.X + prev.W)
				if gap > wordGap(prev.FontSize) {
					b.WriteByte(' ')
				}
			}
			b.WriteString(t.S)
		}
		lines = append(lines, b.String())
	}
	return lines
}

// wordGap is the horizontal gap beyond which two row fragments are separate
// words.
func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.0
	}
	return fontSize * 0.3
}
