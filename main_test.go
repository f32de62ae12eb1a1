package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"complaints-dashboard/config"
	"complaints-dashboard/models"
	"complaints-dashboard/storage"
	"complaints-dashboard/utils"
)

const csvHeader = "ID,TEMPO,LOCAL,STATUS,DESCRICAO\n"

// writeSources creates the three CSV sources in dir and points the
// environment at them.
func writeSources(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"IBYTE_CSV":   csvHeader + "1,2023-01-05 10:00:00,Fortaleza - C,Resolvido,Tela quebrada\n",
		"HAPVIDA_CSV": csvHeader + "2,2023-01-06 09:30:00,Recife - P,Respondida,Consulta negada\n3,2023-01-07 08:00:00,--,Resolvido,x\n",
		"NAGEM_CSV":   csvHeader + "4,2023-01-08 12:00:00,Natal - RN,Resolvido,Garantia\n",
	}
	for env, body := range files {
		path := filepath.Join(dir, strings.ToLower(env)+".csv")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		t.Setenv(env, path)
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	root.SetContext(context.Background())
	err := root.Execute()
	return out.String(), err
}

func TestSummaryCommandJSON(t *testing.T) {
	writeSources(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	out, err := runRoot(t, "summary", "-o", "json", "--entity", "Hapvida", "--status", "Resolvido")
	require.NoError(t, err)

	var v models.DashboardView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 4, v.Overall.Total)
	assert.Equal(t, 1, v.Filtered.Counts.Total)
	assert.Equal(t, []models.KeyCount{{Key: models.NotAvailable, Count: 1}}, v.Filtered.ByRegion)
	assert.Equal(t, "Hapvida", v.Selection.Entity)
}

func TestSummaryCommandRejectsBadDate(t *testing.T) {
	writeSources(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	_, err := runRoot(t, "summary", "--from", "05/01/2023")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
}

func TestCatalogCommandYAML(t *testing.T) {
	writeSources(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	out, err := runRoot(t, "catalog", "--output", "yaml")
	require.NoError(t, err)

	var c models.Catalog
	require.NoError(t, yaml.Unmarshal([]byte(out), &c))
	assert.Equal(t, []string{models.AllOption, "CE", "PE", "RN", models.NotAvailable}, c.Regions)
	assert.Equal(t, 15, c.MaxDescriptionLength)
}

func TestExportCommandWritesCSV(t *testing.T) {
	writeSources(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "error")
	out := filepath.Join(t.TempDir(), "view.csv")

	_, err := runRoot(t, "export", "--region", "PE", "--out", out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2,"))
}

func TestLoadDashboardMissingSource(t *testing.T) {
	c := &config.Config{
		SourceKind:    config.SourceCSV,
		IbyteCSV:      filepath.Join(t.TempDir(), "missing.csv"),
		TimeZone:      "UTC",
		HistogramBins: 20,
	}
	_, err := loadDashboard(context.Background(), c, utils.NewNopLogger(), nil)
	require.Error(t, err)
}

func TestNewSourceReaderSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints.db")
	db, err := sql.Open(storage.DriverSQLite, path)
	require.NoError(t, err)
	for _, table := range []string{"reclameaqui_ibyte", "reclameaqui_hapvida", "reclameaqui_nagem"} {
		_, err := db.Exec(`CREATE TABLE ` + table + ` (id TEXT, tempo TEXT, local TEXT, status TEXT, descricao TEXT)`)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO reclameaqui_nagem VALUES ('9', '2023-02-01 10:00:00', 'Natal - RN', 'Resolvido', 'ok')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c := &config.Config{
		SourceKind:    config.SourceSQLite,
		SQLitePath:    path,
		IbyteTable:    "reclameaqui_ibyte",
		HapvidaTable:  "reclameaqui_hapvida",
		NagemTable:    "reclameaqui_nagem",
		MaxRetries:    1,
		TimeZone:      "UTC",
		HistogramBins: 20,
	}
	d, err := loadDashboard(context.Background(), c, utils.NewNopLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Dataset().Len())
	assert.Equal(t, "RN", d.Dataset().Records()[0].Region)
}

func TestSelectionFlags(t *testing.T) {
	var sel selectionFlags
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	sel.register(cmd)
	cmd.SetArgs([]string{"--entity", "Nagem", "--max-length", "10", "--to", "2023-01-06"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Nagem", sel.in.Entity)
	assert.Equal(t, "10", sel.in.MaxLength)
	assert.Equal(t, "2023-01-06", sel.in.To)
	assert.Empty(t, sel.in.Region)
}

func TestWriteOutput(t *testing.T) {
	v := map[string]int{"total": 3}
	text := func(w io.Writer) { _, _ = io.WriteString(w, "plain") }

	tests := []struct {
		format string
		want   string
	}{
		{outputText, "plain"},
		{"", "plain"},
		{outputJSON, "{\n  \"total\": 3\n}\n"},
		{outputYAML, "total: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeOutput(&buf, tt.format, v, text))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	err := writeOutput(io.Discard, "xml", v, text)
	require.Error(t, err)
}

type recordingWriter struct {
	rows     []models.Complaint
	writeErr error
	closed   bool
}

func (w *recordingWriter) Write(complaints []models.Complaint) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	w.rows = append(w.rows, complaints...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestWriteComplaints(t *testing.T) {
	view := []models.Complaint{{ID: "1"}, {ID: "2"}}

	w := &recordingWriter{}
	require.NoError(t, writeComplaints(w, view))
	assert.Equal(t, view, w.rows)
	assert.True(t, w.closed)

	failing := &recordingWriter{writeErr: errors.New("disk full")}
	err := writeComplaints(failing, view)
	require.ErrorIs(t, err, failing.writeErr)
	assert.True(t, failing.closed)
}
