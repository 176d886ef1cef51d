package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestComputeSalesStats(t *testing.T) {
	path := writeCSV(t, "Style,Status,Qty,Amount\n"+
		"AN209,Delivered,2,10\n"+
		"AN209,Cancelled,1,30\n"+
		"BL001,Delivered,1,40\n")

	stats, err := computeSalesStats(path)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.EntryCount)
	assert.InDelta(t, 90.0, stats.TotalSales, 0.001)
	assert.InDelta(t, 30.0, stats.AverageSales, 0.001)
	assert.InDelta(t, 20.0, stats.MinSales, 0.001)
	assert.InDelta(t, 40.0, stats.MaxSales, 0.001)

	an := stats.StyleStatusCount["AN209"]
	assert.Equal(t, 2, an.TotalCount)
	assert.Equal(t, 1, an.StatusCounts["Delivered"])
	assert.Equal(t, 1, an.StatusCounts["Cancelled"])

	bl := stats.StyleStatusCount["BL001"]
	assert.Equal(t, 1, bl.TotalCount)
}

func TestComputeSalesStatsColumnOrderIndependent(t *testing.T) {
	path := writeCSV(t, "Qty,Amount,Style,Status,Extra\n"+
		"1,15,AN100,Delivered,x\n")

	stats, err := computeSalesStats(path)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, stats.TotalSales, 0.001)
	assert.Equal(t, 1, stats.StyleStatusCount["AN100"].TotalCount)
}

func TestComputeSalesStatsMissingColumn(t *testing.T) {
	path := writeCSV(t, "Style,Qty,Amount\nAN209,1,10\n")
	_, err := computeSalesStats(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status")
}

func TestComputeSalesStatsMalformedRow(t *testing.T) {
	path := writeCSV(t, "Style,Status,Qty,Amount\n"+
		"AN209,Delivered,2,10\n"+
		"AN209,Cancelled,1\n"+ // short row must not truncate the report silently
		"BL001,Delivered,1,40\n")

	_, err := computeSalesStats(path)
	require.Error(t, err)

	path = writeCSV(t, "Style,Status,Qty,Amount\n"+
		"\"AN209,Delivered,1,10\n")
	_, err = computeSalesStats(path)
	require.Error(t, err, "an unterminated quote is a parse failure, not end of data")
}

func TestComputeSalesStatsEmptyReport(t *testing.T) {
	path := writeCSV(t, "Style,Status,Qty,Amount\n")
	stats, err := computeSalesStats(path)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EntryCount)
	assert.Zero(t, stats.AverageSales)
	assert.Empty(t, stats.StyleStatusCount)
}
