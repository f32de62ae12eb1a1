package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaints-dashboard/utils"
)

func TestReadCSVTable(t *testing.T) {
	in := "\ufeffID,TEMPO,LOCAL,STATUS,DESCRICAO,EXTRA\n" +
		"101,2023-01-05,\"Rua X, 10 - Fortaleza - C\",Resolvido,  Produto com defeito  ,x\n" +
		"102,2023-01-06,Recife - PE,Não resolvido,Atraso,y\n"

	table, err := ReadCSVTable(strings.NewReader(in), "Ibyte")
	require.NoError(t, err)

	assert.Equal(t, "Ibyte", table.Entity)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "101", table.Rows[0].ID)
	assert.Equal(t, "Rua X, 10 - Fortaleza - C", table.Rows[0].Location)
	assert.Equal(t, "  Produto com defeito  ", table.Rows[0].Description)
	assert.Equal(t, "Não resolvido", table.Rows[1].Status)
}

func TestReadCSVTableColumnOrderIndependent(t *testing.T) {
	in := "DESCRICAO,STATUS,LOCAL,TEMPO,ID\nd,s,l,t,1\n"

	table, err := ReadCSVTable(strings.NewReader(in), "Nagem")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1", table.Rows[0].ID)
	assert.Equal(t, "t", table.Rows[0].Time)
	assert.Equal(t, "d", table.Rows[0].Description)
}

func TestReadCSVTableMissingColumn(t *testing.T) {
	in := "ID,TEMPO,LOCAL,DESCRICAO\n1,2023-01-01,x,y\n"

	_, err := ReadCSVTable(strings.NewReader(in), "Hapvida")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"STATUS"`)
}

func TestReadCSVTableEmpty(t *testing.T) {
	_, err := ReadCSVTable(strings.NewReader(""), "Ibyte")
	require.Error(t, err)
}

func TestReadCSVTableHeaderOnly(t *testing.T) {
	table, err := ReadCSVTable(strings.NewReader("ID,TEMPO,LOCAL,STATUS,DESCRICAO\n"), "Ibyte")
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestCSVReaderReadsSourcesInOrder(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}
	header := "ID,TEMPO,LOCAL,STATUS,DESCRICAO\n"
	a := write("a.csv", header+"1,2023-01-01,x - C,s,d\n")
	b := write("b.csv", header+"2,2023-01-02,y - P,s,d\n3,2023-01-03,z,s,d\n")

	r := NewCSVReader([]CSVSource{{Entity: "Ibyte", Path: a}, {Entity: "Hapvida", Path: b}}, utils.NewNopLogger())
	defer r.Close()

	tables, err := r.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "Ibyte", tables[0].Entity)
	assert.Len(t, tables[0].Rows, 1)
	assert.Equal(t, "Hapvida", tables[1].Entity)
	assert.Equal(t, "3", tables[1].Rows[1].ID)
}

func TestCSVReaderMissingFile(t *testing.T) {
	r := NewCSVReader([]CSVSource{{Entity: "Ibyte", Path: filepath.Join(t.TempDir(), "nope.csv")}}, utils.NewNopLogger())
	_, err := r.Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}
