// Package roster loads and validates donor rosters from CSV and XLSX files.
// Headers are normalized and common column aliases are mapped so that
// exported contact lists load without manual editing.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// ErrMissingNameColumn is returned when a roster has no usable name column.
var ErrMissingNameColumn = errors.New("donor roster is missing a 'name' column (required: name; optional: donor_id, aliases)")

// Donor is one roster entry. DonorID defaults to the positional index when
// the source column is absent or blank; Aliases is a semicolon-delimited
// free-text list and may be empty.
type Donor struct {
	DonorID string `json:"donor_id" csv:"donor_id"`
	Name    string `json:"name" csv:"name"`
	Aliases string `json:"aliases" csv:"aliases"`
}

// headerAliases maps common roster column names onto the canonical schema.
var headerAliases = map[string]string{
	"donor_name": "name",
	"full_name":  "name",
	"fullname":   "name",
	"id":         "donor_id",
}

// LoadCSV parses a donor roster from CSV bytes. The delimiter is sniffed
// (',', ';' or tab), headers are normalized, and rows with a blank name are
// dropped.
func LoadCSV(data []byte) ([]Donor, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read roster csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingNameColumn
	}

	headers := normalizeHeaders(rows[0])
	if !contains(headers, "name") {
		return nil, ErrMissingNameColumn
	}

	// rebuild with canonical headers so gocsv can unmarshal by tag
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("rewrite roster headers: %w", err)
	}
	if err := w.WriteAll(rows[1:]); err != nil {
		return nil, fmt.Errorf("rewrite roster rows: %w", err)
	}
	w.Flush()

	var donors []Donor
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &donors); err != nil {
		return nil, fmt.Errorf("unmarshal roster: %w", err)
	}
	return backfill(donors), nil
}

// LoadXLSX parses a donor roster from the first sheet of an XLSX workbook.
func LoadXLSX(data []byte) ([]Donor, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingNameColumn
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingNameColumn
	}

	headers := normalizeHeaders(rows[0])
	idCol, nameCol, aliasCol := -1, -1, -1
	for i, h := range headers {
		switch h {
		case "donor_id":
			idCol = i
		case "name":
			nameCol = i
		case "aliases":
			aliasCol = i
		}
	}
	if nameCol < 0 {
		return nil, ErrMissingNameColumn
	}

	donors := make([]Donor, 0, len(rows)-1)
	for _, row := range rows[1:] {
		donors = append(donors, Donor{
			DonorID: cell(row, idCol),
			Name:    cell(row, nameCol),
			Aliases: cell(row, aliasCol),
		})
	}
	return backfill(donors), nil
}

// backfill drops blank-name rows and assigns positional donor IDs where the
// source had none. Generated IDs are bumped past any explicitly supplied ones
// so a partially filled donor_id column cannot mint a duplicate.
func backfill(donors []Donor) []Donor {
	taken := make(map[string]struct{}, len(donors))
	for _, d := range donors {
		if id := strings.TrimSpace(d.DonorID); id != "" {
			taken[id] = struct{}{}
		}
	}

	out := donors[:0]
	for i, d := range donors {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		if strings.TrimSpace(d.DonorID) == "" {
			n := i
			id := strconv.Itoa(n)
			for _, used := taken[id]; used; _, used = taken[id] {
				n++
				id = strconv.Itoa(n)
			}
			taken[id] = struct{}{}
			d.DonorID = id
		}
		out = append(out, d)
	}
	return out
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if canonical, ok := headerAliases[h]; ok {
			h = canonical
		}
		headers[i] = h
	}
	return headers
}

// detectDelimiter picks the candidate delimiter occurring most often in the
// first non-empty line, defaulting to comma.
func detectDelimiter(data []byte) rune {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		best, bestCount := ',', strings.Count(line, ",")
		for _, cand := range []rune{';', '\t'} {
			if n := strings.Count(line, string(cand)); n > bestCount {
				best, bestCount = cand, n
			}
		}
		return best
	}
	return ','
}

func contains(headers []string, want string) bool {
	for _, h := range headers {
		if h == want {
			return true
		}
	}
	return false
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
