package io

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/matrix"
)

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtTSV  = ".tsv"
	ExtJSON = ".json"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

type matrixFile struct {
	Names  []string    `json:"names,omitempty" yaml:"names,omitempty"`
	Matrix [][]float64 `json:"matrix" yaml:"matrix"`
}

// ReadCSV decodes a correlation matrix from delimited text.
//
// The first row holds the variable names. Each following row holds one row
// of the matrix and may start with its name, in which case the header may
// carry an empty corner cell:
//
//	,a,b
//	a,1,0.4
//	b,0.4,1
//
// A first row made only of numbers is taken as data and the variables are
// named N1..Nn. Row names, when present, must match the header.
func ReadCSV(r io.Reader, comma rune) (*matrix.Matrix, error) {
	records, err := readRecords(r, comma)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyMatrix, "no rows")
	}

	header, rows := records[0], records[1:]
	if numeric(header) {
		header, rows = nil, records
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyMatrix, "header without rows")
	}

	var names []string
	labelled := len(rows[0]) == len(rows)+1
	switch {
	case header == nil:
	case len(header) == len(rows)+1:
		names = header[1:]
	default:
		names = header
	}

	values := make([][]float64, len(rows))
	for i, rec := range rows {
		if labelled {
			if len(rec) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidMatrix, "row %d is empty", i+1)
			}
			if names != nil && i < len(names) && strings.TrimSpace(rec[0]) != strings.TrimSpace(names[i]) {
				return nil, errors.New(errors.ErrCodeInvalidMatrix, "row %d is labelled %q, header says %q", i+1, rec[0], names[i])
			}
			rec = rec[1:]
		}
		values[i], err = parseRow(rec, i+1)
		if err != nil {
			return nil, err
		}
	}
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return matrix.New(names, values)
}

// ReadObservations decodes raw observations, one per row with a header of
// variable names, and correlates them.
func ReadObservations(r io.Reader, comma rune) (*matrix.Matrix, error) {
	records, err := readRecords(r, comma)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New(errors.ErrCodeEmptyMatrix, "need a header and at least one observation")
	}

	names := records[0]
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	rows := make([][]float64, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(names) {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "observation %d has %d values, want %d", i+1, len(rec), len(names))
		}
		row, err := parseRow(rec, i+1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return matrix.FromObservations(names, rows)
}

// ReadJSON decodes a matrix from a JSON object:
//
//	{"names": ["a", "b"], "matrix": [[1, 0.4], [0.4, 1]]}
//
// names is optional.
func ReadJSON(r io.Reader) (*matrix.Matrix, error) {
	var f matrixFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
	}
	return matrix.New(f.Names, f.Matrix)
}

// ReadYAML decodes a matrix from YAML with the same fields as [ReadJSON].
func ReadYAML(r io.Reader) (*matrix.Matrix, error) {
	var f matrixFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeEmptyMatrix, "empty document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML")
	}
	return matrix.New(f.Names, f.Matrix)
}

// Import reads a matrix file, choosing the decoder by extension.
func Import(path string) (*matrix.Matrix, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV:
		return ReadCSV(f, ',')
	case ExtTSV:
		return ReadCSV(f, '\t')
	case ExtJSON:
		return ReadJSON(f)
	case ExtYAML, ExtYML:
		return ReadYAML(f)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported matrix file %s (want .csv, .tsv, .json or .yaml)", path)
}

// ImportObservations reads raw observations from a .csv or .tsv file.
func ImportObservations(path string) (*matrix.Matrix, error) {
	comma, err := delimiter(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadObservations(f, comma)
}

// ImportJSON reads a JSON matrix file.
func ImportJSON(path string) (*matrix.Matrix, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ImportCSV reads a comma separated matrix file.
func ImportCSV(path string) (*matrix.Matrix, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, ',')
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}

func delimiter(path string) (rune, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV:
		return ',', nil
	case ExtTSV:
		return '\t', nil
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "observations must be .csv or .tsv, got %s", path)
}

func readRecords(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read delimited text")
		}
		if blank(rec) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(rec []string, line int) ([]float64, error) {
	row := make([]float64, len(rec))
	for j, cell := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "row %d, column %d: %q is not a number", line, j+1, cell)
		}
		row[j] = v
	}
	return row, nil
}

func numeric(rec []string) bool {
	for _, cell := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return false
		}
	}
	return len(rec) > 0
}

func blank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
