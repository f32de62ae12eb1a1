package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaints-dashboard/models"
)

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "view.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	ts := time.Date(2023, 3, 4, 10, 30, 0, 0, time.UTC)
	require.NoError(t, w.Write([]models.Complaint{
		{ID: "7", Timestamp: ts, Location: "Fortaleza - C", Region: "CE", Status: "Resolvido", Description: " ação ", Entity: "Ibyte"},
	}))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, []string{"7", "2023-03-04T10:30:00Z", "Fortaleza - C", "CE", "Resolvido", " ação ", "4", "Ibyte"}, rows[1])
}

func TestCSVWriterEmptyView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(nil))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,timestamp,location,region,status,description,description_length,entity\n", string(data))
}
