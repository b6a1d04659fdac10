// SPDX-License-Identifier: MIT
package metric

import "math"

// Warped computes the DTW distance between sequences a and b under metric
// m, a Sakoe-Chiba-style band of radius `band` (negative disables the
// constraint), and an early-abandon `dropout` threshold. It returns +Inf
// when the distance is provably at or beyond dropout.
//
// The band constraint, predecessor tie-break (diagonal < left < up), and
// row-dropout cutoff all follow the warped-distance specification this
// package implements; see metric_test.go for the worked scenarios it is
// pinned against.
func Warped(a, b Sequence, m Metric, band int, dropout float64) (float64, error) {
	rows, cols := a.Len(), b.Len()
	if rows == 0 || cols == 0 {
		return 0, ErrEmptyView
	}

	length := rows
	if cols > length {
		length = cols
	}

	if rows == 1 && cols == 1 {
		acc := m.Reduce(m.Init(), a.Get(0), b.Get(0))

		return m.Norm(acc, length), nil
	}

	inf := math.Inf(1)
	cost := make([][]float64, rows)
	for i := range cost {
		cost[i] = make([]float64, cols)
		for j := range cost[i] {
			cost[i][j] = inf
		}
	}

	colsOverRows := float64(cols) / float64(rows)
	inBand := func(i, j int) bool {
		if band < 0 {
			return true
		}
		diff := float64(i)*colsOverRows - float64(j)
		if diff < 0 {
			diff = -diff
		}

		return diff <= float64(band)
	}

	if inBand(0, 0) {
		cost[0][0] = m.Reduce(m.Init(), a.Get(0), b.Get(0))
	}

	// First row and column chain-extend from their single predecessor.
	for j := 1; j < cols; j++ {
		if !inBand(0, j) || math.IsInf(cost[0][j-1], 1) {
			continue
		}
		cost[0][j] = m.Reduce(cost[0][j-1], a.Get(0), b.Get(j))
	}
	for i := 1; i < rows; i++ {
		if !inBand(i, 0) || math.IsInf(cost[i-1][0], 1) {
			continue
		}
		cost[i][0] = m.Reduce(cost[i-1][0], a.Get(i), b.Get(0))
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			if !inBand(i, j) {
				continue
			}
			prevAcc, ok := pickPredecessor(cost[i-1][j-1], cost[i][j-1], cost[i-1][j])
			if !ok {
				continue
			}
			cost[i][j] = m.Reduce(prevAcc, a.Get(i), b.Get(j))
		}

		// Row dropout: once the best normalized value reachable in this row
		// already exceeds dropout, it can only grow in later rows.
		rowMin := inf
		for j := 0; j < cols; j++ {
			if math.IsInf(cost[i][j], 1) {
				continue
			}
			n := m.Norm(cost[i][j], length)
			if n < rowMin {
				rowMin = n
			}
		}
		if rowMin > dropout {
			return inf, nil
		}
	}

	final := cost[rows-1][cols-1]
	if math.IsInf(final, 1) {
		return inf, nil
	}
	result := m.Norm(final, length)
	if result >= dropout {
		return inf, nil
	}

	return result, nil
}

// pickPredecessor selects the minimum of the three DP predecessors with the
// specified tie-break order: diagonal < left < up. It returns ok=false when
// all three are +Inf (cell unreachable under the band).
func pickPredecessor(diag, left, up float64) (best float64, ok bool) {
	best = diag
	ok = !math.IsInf(diag, 1)

	if !math.IsInf(left, 1) && (!ok || left < best) {
		best, ok = left, true
	}
	if !math.IsInf(up, 1) && (!ok || up < best) {
		best, ok = up, true
	}

	return best, ok
}
