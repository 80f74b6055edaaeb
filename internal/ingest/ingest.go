package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/models"
)

var (
	ErrMissingColumn     = errors.New("file must have 'timestamp' and 'value' columns")
	ErrNonFiniteValue    = errors.New("value is not a finite number")
	ErrNoPoints          = errors.New("no data points")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

type envelope struct {
	Values []models.RawPoint `json:"values" yaml:"values"`
}

// ReadJSON accepts either an array of points or an object with a "values" array
func ReadJSON(r io.Reader) ([]models.RawPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	var points []models.RawPoint
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &points)
	} else {
		var env envelope
		err = json.Unmarshal(trimmed, &env)
		points = env.Values
	}
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return validate(points)
}

// ReadYAML accepts the same two shapes as ReadJSON
func ReadYAML(r io.Reader) ([]models.RawPoint, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoPoints
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	var points []models.RawPoint
	var err error
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		err = node.Decode(&points)
	} else {
		var env envelope
		err = node.Decode(&env)
		points = env.Values
	}
	if err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}

	return validate(points)
}

// ReadCSV reads a table whose header names a timestamp and a value column, in any order
// and case. Other columns are ignored.
func ReadCSV(r io.Reader) ([]models.RawPoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoPoints
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	tsCol, valueCol, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	var points []models.RawPoint
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		p, err := parseRecord(record, tsCol, valueCol, line)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return validate(points)
}

// ReadXLSX reads the first sheet of a workbook with the same header rules as ReadCSV.
// Blank rows are skipped and date cells become millisecond UTC timestamps.
func ReadXLSX(r io.Reader) ([]models.RawPoint, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoPoints
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoPoints
	}

	tsCol, valueCol, err := headerColumns(rows[0])
	if err != nil {
		return nil, err
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	var points []models.RawPoint
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		p, err := parseRecord(row, tsCol, valueCol, i+2)
		if err != nil {
			return nil, err
		}
		p.Timestamp = excelTimestamp(p.Timestamp, date1904)
		points = append(points, p)
	}

	return validate(points)
}

func headerColumns(header []string) (tsCol, valueCol int, err error) {
	tsCol, valueCol = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "timestamp":
			tsCol = i
		case "value":
			valueCol = i
		}
	}
	if tsCol < 0 || valueCol < 0 {
		return 0, 0, ErrMissingColumn
	}
	return tsCol, valueCol, nil
}

func parseRecord(record []string, tsCol, valueCol, line int) (models.RawPoint, error) {
	if len(record) <= max(tsCol, valueCol) {
		return models.RawPoint{}, fmt.Errorf("line %d: %w", line, ErrMissingColumn)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(record[valueCol]), 64)
	if err != nil {
		return models.RawPoint{}, fmt.Errorf("line %d: parsing value %q: %w", line, record[valueCol], err)
	}
	return models.RawPoint{
		Timestamp: strings.TrimSpace(record[tsCol]),
		Value:     value,
	}, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// excelTimestamp turns a date serial number into ISOMillis. Text cells are returned unchanged.
func excelTimestamp(cell string, date1904 bool) string {
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return cell
	}
	return t.Round(time.Millisecond).UTC().Format(models.ISOMillis)
}

// Read dispatches on the extension of name: .json, .csv, .yaml, .yml or .xlsx
func Read(name string, r io.Reader) ([]models.RawPoint, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		return ReadJSON(r)
	case ".csv":
		return ReadCSV(r)
	case ".yaml", ".yml":
		return ReadYAML(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadFile opens path and reads it according to its extension
func ReadFile(path string) ([]models.RawPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	points, err := Read(path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().Str("component", "ingest").Str("path", path).Int("points", len(points)).Msg("Loaded series")
	return points, nil
}

// FileSource loads a series from a file on every call
type FileSource struct {
	Path string
}

// LoadSeries implements models.SeriesSource
func (s FileSource) LoadSeries(ctx context.Context) ([]models.RawPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.Path)
}

func validate(points []models.RawPoint) ([]models.RawPoint, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	for i, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, fmt.Errorf("point %d: %w", i, ErrNonFiniteValue)
		}
	}

	if err := calculate.CheckRange(models.RawValues(points)); err != nil {
		return nil, err
	}
	return points, nil
}
