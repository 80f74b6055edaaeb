package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/models"
)

var want = []models.RawPoint{
	{Timestamp: "2024-01-01T00:00:00Z", Value: 10},
	{Timestamp: "2024-01-01T01:00:00Z", Value: 12.5},
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "array",
			input: `[{"timestamp":"2024-01-01T00:00:00Z","value":10},{"timestamp":"2024-01-01T01:00:00Z","value":12.5}]`,
		},
		{
			name:  "envelope",
			input: ` {"values":[{"timestamp":"2024-01-01T00:00:00Z","value":10},{"timestamp":"2024-01-01T01:00:00Z","value":12.5}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadJSON(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestReadJSON_Errors(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = ReadJSON(strings.NewReader(`{"values":`))
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffValue, extra ,Timestamp\n10,x,2024-01-01T00:00:00Z\n12.5,y,2024-01-01T01:00:00Z\n"

	got, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "empty", input: "", err: ErrNoPoints},
		{name: "header only", input: "timestamp,value\n", err: ErrNoPoints},
		{name: "missing column", input: "time,value\n2024-01-01,1\n", err: ErrMissingColumn},
		{name: "non-finite", input: "timestamp,value\n2024-01-01,NaN\n", err: ErrNonFiniteValue},
		{name: "short row", input: "timestamp,value\n2024-01-01\n", err: ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := ReadCSV(strings.NewReader("timestamp,value\n2024-01-01,abc\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestReadYAML(t *testing.T) {
	input := `
values:
  - timestamp: "2024-01-01T00:00:00Z"
    value: 10
  - timestamp: "2024-01-01T01:00:00Z"
    value: 12.5
`
	got, err := ReadYAML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ReadYAML(strings.NewReader("- timestamp: \"2024-01-01T00:00:00Z\"\n  value: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, want[:1], got)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "series.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("timestamp,value\n2024-01-01T00:00:00Z,10\n2024-01-01T01:00:00Z,12.5\n"), 0o600))

	got, err := ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	src := FileSource{Path: csvPath}
	got, err = src.LoadSeries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	xlsx := filepath.Join(dir, "series.xlsx")
	require.NoError(t, os.WriteFile(xlsx, workbook(t, [][]any{
		{"timestamp", "value"},
		{"2024-01-01T00:00:00Z", 10},
		{"2024-01-01T01:00:00Z", 12.5},
	}), 0o600))
	got, err = ReadFile(xlsx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	broken := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, []byte("binary"), 0o600))
	_, err = ReadFile(broken)
	assert.Error(t, err)

	txt := filepath.Join(dir, "series.txt")
	require.NoError(t, os.WriteFile(txt, []byte("10\n"), 0o600))
	_, err = ReadFile(txt)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFileSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FileSource{Path: "irrelevant.csv"}.LoadSeries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// workbook builds an xlsx file whose first sheet holds rows starting at A1
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]any
		want    []models.RawPoint
		wantErr error
	}{
		{
			name: "text timestamps",
			rows: [][]any{
				{"Timestamp", "Value"},
				{"2024-01-01T00:00:00Z", 10},
				{"2024-01-01T01:00:00Z", 12.5},
			},
			want: want,
		},
		{
			name: "columns in any order with extras and blank rows",
			rows: [][]any{
				{"value", "note", "timestamp"},
				{10, "a", "2024-01-01T00:00:00Z"},
				{},
				{12.5, "b", "2024-01-01T01:00:00Z"},
			},
			want: want,
		},
		{
			name: "date cells",
			rows: [][]any{
				{"timestamp", "value"},
				{time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 3},
			},
			want: []models.RawPoint{{Timestamp: "2024-01-01T09:00:00.000Z", Value: 3}},
		},
		{
			name:    "missing value column",
			rows:    [][]any{{"timestamp", "amount"}, {"2024-01-01", 1}},
			wantErr: ErrMissingColumn,
		},
		{
			name:    "header only",
			rows:    [][]any{{"timestamp", "value"}},
			wantErr: ErrNoPoints,
		},
		{
			name:    "empty sheet",
			rows:    nil,
			wantErr: ErrNoPoints,
		},
		{
			name:    "overflowing values",
			rows:    [][]any{{"timestamp", "value"}, {"a", 1e200}, {"b", -1e200}, {"c", 1e200}},
			wantErr: calculate.ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadXLSX(bytes.NewReader(workbook(t, tt.rows)))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadXLSX_BadValue(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader(workbook(t, [][]any{
		{"timestamp", "value"},
		{"2024-01-01", "ten"},
	})))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRead_RejectsOverflow(t *testing.T) {
	var b strings.Builder
	b.WriteString("timestamp,value\n")
	for i, v := range []float64{1e200, -1e200, 1e200} {
		fmt.Fprintf(&b, "2024-01-01T0%d:00:00Z,%g\n", i, v)
	}

	_, err := Read("series.csv", strings.NewReader(b.String()))
	assert.ErrorIs(t, err, calculate.ErrOutOfRange)
}
