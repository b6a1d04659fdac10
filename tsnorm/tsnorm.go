// SPDX-License-Identifier: MIT
// Package tsnorm provides dataset-wide min-max normalization, the
// preprocessing step recommended before clustering subsequences whose raw
// value ranges differ from row to row.
package tsnorm

import (
	"errors"

	"github.com/onexAdditional/dtwindex/dataset"
	"gonum.org/v1/gonum/floats"
)

// ErrConstantDataset indicates every value in the dataset is identical, so
// min-max normalization has no well-defined scale to map onto.
var ErrConstantDataset = errors.New("tsnorm: dataset has zero range, cannot min-max normalize")

// MinMax rescales every value in m in place into [0, 1] using the
// dataset's global minimum and maximum, so all rows share one scale
// before being clustered. Returns the (min, max) it normalized against.
func MinMax(m *dataset.Matrix) (lo, hi float64, err error) {
	lo, hi, err = m.MinMax()
	if err != nil {
		return 0, 0, err
	}
	if lo == hi {
		return 0, 0, ErrConstantDataset
	}

	span := hi - lo
	for row := 0; row < m.Rows(); row++ {
		values, err := m.Row(row)
		if err != nil {
			return 0, 0, err
		}
		floats.AddConst(-lo, values)
		floats.Scale(1/span, values)
	}

	return lo, hi, nil
}
