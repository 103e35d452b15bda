package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/match"
)

func sampleMatches() []match.Result {
	return []match.Result{
		{TxID: "3", DonorName: "Jane Doe", DonorID: "2", DateTx: "2024-01-05", Score: 90, Status: match.StatusLikely},
		{TxID: "1", DonorName: "Aaron Black", DonorID: "1", DateTx: "2024-02-01", Score: 63, Status: match.StatusLow},
		{TxID: "2", DonorName: "Jane Doe", DonorID: "2", DateTx: "2024-03-10", Score: 85, Status: match.StatusReview},
	}
}

func TestDigestByDonor(t *testing.T) {
	rows := DigestByDonor(sampleMatches())
	require.Len(t, rows, 3)

	// donor name ascending, then date descending within a donor
	assert.Equal(t, "Aaron Black", rows[0].DonorName)
	assert.Equal(t, "2024-03-10", rows[1].DateTx)
	assert.Equal(t, "2024-01-05", rows[2].DateTx)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, DigestByDonor(sampleMatches())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "donor_id,donor_name,insider_name,score,status,issuer,date_tx,nature,security,qty_or_value,tx_id", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Aaron Black")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, DigestByDonor(sampleMatches())))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "donor_id", rows[0][0])
	assert.Equal(t, "Aaron Black", rows[1][1])
}
