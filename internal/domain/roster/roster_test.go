package roster

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	t.Run("canonical headers", func(t *testing.T) {
		donors, err := LoadCSV([]byte("donor_id,name,aliases\n7,John Smith,Jack; Johnny\n8,Jane Doe,\n"))
		require.NoError(t, err)
		require.Len(t, donors, 2)

		assert.Equal(t, Donor{DonorID: "7", Name: "John Smith", Aliases: "Jack; Johnny"}, donors[0])
		assert.Equal(t, Donor{DonorID: "8", Name: "Jane Doe"}, donors[1])
	})

	t.Run("aliased headers are mapped", func(t *testing.T) {
		donors, err := LoadCSV([]byte("ID,Donor Name\n42,John Smith\n"))
		require.NoError(t, err)
		require.Len(t, donors, 1)

		assert.Equal(t, "42", donors[0].DonorID)
		assert.Equal(t, "John Smith", donors[0].Name)
		assert.Empty(t, donors[0].Aliases)
	})

	t.Run("full name header variant", func(t *testing.T) {
		donors, err := LoadCSV([]byte("Full Name\nJane Doe\n"))
		require.NoError(t, err)
		require.Len(t, donors, 1)
		assert.Equal(t, "Jane Doe", donors[0].Name)
	})

	t.Run("semicolon delimiter sniffed", func(t *testing.T) {
		donors, err := LoadCSV([]byte("name;aliases\nJohn Smith;Jack\n"))
		require.NoError(t, err)
		require.Len(t, donors, 1)
		assert.Equal(t, "John Smith", donors[0].Name)
		assert.Equal(t, "Jack", donors[0].Aliases)
	})

	t.Run("missing donor ids backfilled positionally", func(t *testing.T) {
		donors, err := LoadCSV([]byte("name\nJohn Smith\nJane Doe\n"))
		require.NoError(t, err)
		require.Len(t, donors, 2)
		assert.Equal(t, "0", donors[0].DonorID)
		assert.Equal(t, "1", donors[1].DonorID)
	})

	t.Run("generated ids avoid explicit ones", func(t *testing.T) {
		donors, err := LoadCSV([]byte("donor_id,name\n1,John Smith\n,Jane Doe\n,Aaron Black\n"))
		require.NoError(t, err)
		require.Len(t, donors, 3)

		assert.Equal(t, "1", donors[0].DonorID)
		assert.Equal(t, "2", donors[1].DonorID)
		assert.Equal(t, "3", donors[2].DonorID)

		seen := map[string]bool{}
		for _, d := range donors {
			assert.False(t, seen[d.DonorID], d.DonorID)
			seen[d.DonorID] = true
		}
	})

	t.Run("blank name rows dropped", func(t *testing.T) {
		donors, err := LoadCSV([]byte("name\nJohn Smith\n\nJane Doe\n"))
		require.NoError(t, err)
		require.Len(t, donors, 2)
	})

	t.Run("missing name column is fatal", func(t *testing.T) {
		_, err := LoadCSV([]byte("donor_id,city\n1,Toronto\n"))
		assert.ErrorIs(t, err, ErrMissingNameColumn)
	})

	t.Run("empty input is fatal", func(t *testing.T) {
		_, err := LoadCSV(nil)
		assert.ErrorIs(t, err, ErrMissingNameColumn)
	})
}

func TestLoadXLSX(t *testing.T) {
	build := func(t *testing.T, rows [][]any) []byte {
		t.Helper()
		f := excelize.NewFile()
		defer f.Close()
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
		}
		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf))
		return buf.Bytes()
	}

	t.Run("roster sheet", func(t *testing.T) {
		data := build(t, [][]any{
			{"Donor Name", "Aliases"},
			{"John Smith", "Jack"},
			{"Jane Doe", ""},
		})

		donors, err := LoadXLSX(data)
		require.NoError(t, err)
		require.Len(t, donors, 2)

		assert.Equal(t, Donor{DonorID: "0", Name: "John Smith", Aliases: "Jack"}, donors[0])
		assert.Equal(t, Donor{DonorID: "1", Name: "Jane Doe"}, donors[1])
	})

	t.Run("missing name column is fatal", func(t *testing.T) {
		data := build(t, [][]any{{"donor_id", "city"}, {"1", "Toronto"}})
		_, err := LoadXLSX(data)
		assert.ErrorIs(t, err, ErrMissingNameColumn)
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := LoadXLSX([]byte("definitely not xlsx"))
		assert.Error(t, err)
	})
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', detectDelimiter([]byte("a,b,c\n")))
	assert.Equal(t, ';', detectDelimiter([]byte("a;b;c\n")))
	assert.Equal(t, '\t', detectDelimiter([]byte("a\tb\tc\n")))
	assert.Equal(t, ',', detectDelimiter(nil))
}
