package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Events",
		Columns: []string{"Title", "Status"},
		Rows: []map[string]string{
			{"Title": "Jazz Night", "Status": "Live"},
			{"Title": "Tech Expo, 2026", "Status": "Upcoming"},
		},
	}
}

func TestCSVRoundsTripThroughReader(t *testing.T) {
	out, err := CSV(sampleDataset())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Title", "Status"}, records[0])
	assert.Equal(t, []string{"Jazz Night", "Live"}, records[1])
	assert.Equal(t, []string{"Tech Expo, 2026", "Upcoming"}, records[2])
}

func TestCSVMissingCellRendersEmpty(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, map[string]string{"Title": "No status yet"})

	out, err := CSV(data)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"No status yet", ""}, records[3])
}

func TestCSVRequiresColumns(t *testing.T) {
	_, err := CSV(Dataset{Title: "empty"})
	assert.Error(t, err)
}

func TestPDFProducesDocument(t *testing.T) {
	out, err := PDF(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFRequiresColumns(t *testing.T) {
	_, err := PDF(Dataset{Title: "empty"})
	assert.Error(t, err)
}
