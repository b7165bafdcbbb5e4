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

// WriteJSON encodes a matrix as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(m *matrix.Matrix, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(matrixFile{Names: m.Names(), Matrix: m.Values()}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

// WriteYAML encodes a matrix as YAML and writes it to w.
func WriteYAML(m *matrix.Matrix, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(matrixFile{Names: m.Names(), Matrix: m.Values()}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return enc.Close()
}

// WriteCSV writes a matrix as delimited text with an empty corner cell and
// labelled rows, the layout [ReadCSV] reads back.
func WriteCSV(m *matrix.Matrix, w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	names := m.Names()
	if err := cw.Write(append([]string{""}, names...)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write header")
	}
	for i, row := range m.Values() {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, names[i])
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "flush")
	}
	return nil
}

// Export writes a matrix to path, choosing the encoder by extension.
func Export(m *matrix.Matrix, path string) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV:
		write = func(w io.Writer) error { return WriteCSV(m, w, ',') }
	case ExtTSV:
		write = func(w io.Writer) error { return WriteCSV(m, w, '\t') }
	case ExtJSON:
		write = func(w io.Writer) error { return WriteJSON(m, w) }
	case ExtYAML, ExtYML:
		write = func(w io.Writer) error { return WriteYAML(m, w) }
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported matrix file %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportJSON writes a matrix to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(m *matrix.Matrix, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(m, f)
}
