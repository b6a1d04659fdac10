// Package dtwindex indexes numeric time series for fast approximate
// nearest-neighbor lookup under Dynamic Time Warping.
//
// A dataset is a fixed-width matrix of rows (dataset). Every subsequence
// of every admissible length is clustered into groups by centroid distance
// (group), and the per-length groups are assembled into a single
// cross-length space (index) that can answer best-match and k-nearest-
// neighbor queries for a query window of any length within its warping
// band of an indexed length.
//
// metric implements the distance functions (DTW, Euclidean, Manhattan,
// Chebyshev, and the LB_Keogh/cascade pruning path) that group and index
// build on. tsview presents dataset rows as zero-copy windows. tsnorm
// rescales a dataset before indexing. groupfile persists a built index to
// a text file and restores it without re-clustering. session ties a
// dataset, its index, and a logger together behind a handle-based API, and
// cmd/dtwindex exposes that API as a command-line tool.
package dtwindex
