// SPDX-License-Identifier: MIT
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadOptions configures Load. The zero value is not meaningful; use
// DefaultLoadOptions or NewLoadOptions.
type LoadOptions struct {
	// Separators is the set of characters that delimit columns within a
	// line. An empty string means "any whitespace" (strings.Fields).
	Separators string

	// StartCol is the number of leading columns to discard on every line
	// (e.g. a row label or timestamp column).
	StartCol int

	// MaxRows caps the number of data rows read. Zero or negative means
	// unlimited.
	MaxRows int
}

// LoadOption mutates LoadOptions under construction.
type LoadOption func(*LoadOptions)

// WithSeparators overrides the column delimiter set.
func WithSeparators(seps string) LoadOption {
	return func(o *LoadOptions) { o.Separators = seps }
}

// WithStartCol sets the number of leading columns to discard per line.
func WithStartCol(n int) LoadOption {
	return func(o *LoadOptions) { o.StartCol = n }
}

// WithMaxRows caps the number of rows read; non-positive means unlimited.
func WithMaxRows(n int) LoadOption {
	return func(o *LoadOptions) { o.MaxRows = n }
}

// DefaultLoadOptions returns the documented defaults: whitespace-delimited,
// no leading columns discarded, unlimited rows.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Separators: "", StartCol: 0, MaxRows: 0}
}

// NewLoadOptions resolves LoadOptions from defaults plus opts, last-writer-wins.
func NewLoadOptions(opts ...LoadOption) LoadOptions {
	o := DefaultLoadOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Load reads path and produces a dense R×L Matrix. Each line is split on any
// character in opts.Separators (or arbitrary whitespace when unset), the
// first opts.StartCol fields are discarded, and up to opts.MaxRows rows are
// kept. Every retained row must have the same column count; a mismatch
// fails the load with ErrColumnMismatch.
func Load(path string, opts ...LoadOption) (*Matrix, error) {
	o := NewLoadOptions(opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err)
	}
	defer f.Close()

	var rows [][]float64
	var cols = -1

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if o.MaxRows > 0 && len(rows) >= o.MaxRows {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitFields(line, o.Separators)
		if o.StartCol > 0 {
			if o.StartCol >= len(fields) {
				fields = nil
			} else {
				fields = fields[o.StartCol:]
			}
		}

		row := make([]float64, len(fields))
		for i, f := range fields {
			v, perr := strconv.ParseFloat(f, 64)
			if perr != nil {
				return nil, fmt.Errorf("%w: %s: row %d col %d: %q", ErrBadValue, path, len(rows), i, f)
			}
			row[i] = v
		}

		if cols == -1 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, fmt.Errorf("%w: %s: row %d has %d columns, want %d", ErrColumnMismatch, path, len(rows), len(row), cols)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, path, err)
	}
	if len(rows) == 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	m := &Matrix{rows: len(rows), cols: cols, data: make([]float64, len(rows)*cols)}
	for i, row := range rows {
		copy(m.data[i*cols:(i+1)*cols], row)
	}

	return m, nil
}

// splitFields splits line on any rune in seps; an empty seps falls back to
// splitting on arbitrary whitespace.
func splitFields(line, seps string) []string {
	if seps == "" {
		return strings.Fields(line)
	}

	raw := strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})

	return raw
}
