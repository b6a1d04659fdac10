// SPDX-License-Identifier: MIT
package metric

import "math"

// euclideanMetric accumulates squared differences; Norm takes the square
// root and divides by length, giving the familiar root-mean-style distance
// used throughout the index (not a true RMS, which would divide before the
// square root, but the formula the spec's worked examples pin down).
type euclideanMetric struct{}

func (euclideanMetric) Name() string { return "euclidean" }

func (euclideanMetric) Init() float64 { return 0 }

func (euclideanMetric) Reduce(prevAcc, x, y float64) float64 {
	d := x - y

	return prevAcc + d*d
}

func (euclideanMetric) Norm(acc float64, length int) float64 {
	return math.Sqrt(acc) / float64(length)
}

// InverseNorm inverts Norm: d = sqrt(acc)/length  =>  acc = (d*length)^2.
func (euclideanMetric) InverseNorm(d float64, length int) float64 {
	scaled := d * float64(length)

	return scaled * scaled
}
