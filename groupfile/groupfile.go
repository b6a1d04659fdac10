// SPDX-License-Identifier: MIT
// Package groupfile saves and loads an index.GroupSpace to a deterministic
// plain-text format, so a grouped index can be persisted once and reloaded
// without re-running clustering.
//
// Format (whitespace-separated tokens, one record per line):
//
//	1 <tau> <rows> <maxLen>
//	<lengthFrom> <lengthTo> <metricName>
//	LEN <length> <groupCount>
//	GROUP <memberCount>
//	<centroid values...>
//	<row> <start>            (repeated memberCount times)
//	...                       (GROUP blocks repeated groupCount times)
//	...                       (LEN blocks repeated for each grouped length)
//
// Lengths and, within a length, groups are written in ascending/creation
// order, and a group's members are written in the order they were
// absorbed, so two saves of the same GroupSpace produce byte-identical
// output.
package groupfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/onexAdditional/dtwindex/config"
	"github.com/onexAdditional/dtwindex/dataset"
	"github.com/onexAdditional/dtwindex/group"
	"github.com/onexAdditional/dtwindex/index"
)

const formatVersion = 1

// Save writes every grouped length in gs to w in the package's text
// format.
func Save(w io.Writer, gs *index.GroupSpace) error {
	bw := bufio.NewWriter(w)

	lengths := gs.Lengths()
	if len(lengths) == 0 {
		return fmt.Errorf("groupfile: save: %w", index.ErrNotGrouped)
	}

	fmt.Fprintf(bw, "%d %s %d %d\n", formatVersion, strconv.FormatFloat(gs.Tau(), 'g', -1, 64), gs.Rows(), lengths[len(lengths)-1])
	fmt.Fprintf(bw, "%d %d %s\n", lengths[0], lengths[len(lengths)-1], gs.Metric())

	for _, length := range lengths {
		s := gs.Set(length)
		groups := s.Groups()
		fmt.Fprintf(bw, "LEN %d %d\n", length, len(groups))
		for _, g := range groups {
			members := s.Members(g)
			fmt.Fprintf(bw, "GROUP %d\n", len(members))
			writeCentroid(bw, g.Centroid())
			for _, mem := range members {
				fmt.Fprintf(bw, "%d %d\n", mem.Row, mem.Start)
			}
		}
	}

	return bw.Flush()
}

func writeCentroid(bw *bufio.Writer, centroid []float64) {
	parts := make([]string, len(centroid))
	for i, v := range centroid {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	bw.WriteString(strings.Join(parts, " "))
	bw.WriteByte('\n')
}

// Load reads a group-index file written by Save and reconstructs a
// GroupSpace over ds. ds must be the same dataset (or one with identical
// dimensions and ordering) the file was saved against; Load checks only
// the recorded row count and maxLen against ds.Rows() and ds.Cols(),
// returning ErrDatasetMismatch on either difference.
func Load(r io.Reader, ds *dataset.Matrix, cfg config.Config) (*index.GroupSpace, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, err := nextLine(sc)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(header)
	if len(fields) != 4 {
		return nil, ErrBadHeader
	}
	version, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, version, formatVersion)
	}
	tau, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	rows, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	maxLen, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if rows != ds.Rows() {
		return nil, fmt.Errorf("%w: rows %d, dataset has %d", ErrDatasetMismatch, rows, ds.Rows())
	}
	if maxLen != ds.Cols() {
		return nil, fmt.Errorf("%w: maxLen %d, dataset has %d columns", ErrDatasetMismatch, maxLen, ds.Cols())
	}

	rangeLine, err := nextLine(sc)
	if err != nil {
		return nil, err
	}
	rangeFields := strings.Fields(rangeLine)
	if len(rangeFields) != 3 {
		return nil, ErrBadRangeLine
	}
	metricName := rangeFields[2]

	gs, err := index.NewGroupSpace(ds, metricName, cfg, tau)
	if err != nil {
		return nil, err
	}
	m := gs.MetricValue()

	sets := make(map[int]*group.Set)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 || fields[0] != "LEN" {
			return nil, ErrBadLengthBlock
		}
		length, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadLengthBlock, err)
		}
		groupCount, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadLengthBlock, err)
		}

		data := make([]group.GroupData, 0, groupCount)
		for i := 0; i < groupCount; i++ {
			gd, err := readGroup(sc)
			if err != nil {
				return nil, err
			}
			data = append(data, gd)
		}
		sets[length] = group.FromGroups(ds, length, m, cfg, tau, data)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("groupfile: load: %w", err)
	}

	gs.LoadSets(sets)

	return gs, nil
}

func readGroup(sc *bufio.Scanner) (group.GroupData, error) {
	header, err := nextLine(sc)
	if err != nil {
		return group.GroupData{}, err
	}
	fields := strings.Fields(header)
	if len(fields) != 2 || fields[0] != "GROUP" {
		return group.GroupData{}, ErrBadGroupBlock
	}
	memberCount, err := strconv.Atoi(fields[1])
	if err != nil {
		return group.GroupData{}, fmt.Errorf("%w: %v", ErrBadGroupBlock, err)
	}

	centroidLine, err := nextLine(sc)
	if err != nil {
		return group.GroupData{}, err
	}
	centroidFields := strings.Fields(centroidLine)
	centroid := make([]float64, len(centroidFields))
	for i, f := range centroidFields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return group.GroupData{}, fmt.Errorf("%w: %v", ErrBadCentroid, err)
		}
		centroid[i] = v
	}

	members := make([]group.Member, 0, memberCount)
	for i := 0; i < memberCount; i++ {
		line, err := nextLine(sc)
		if err != nil {
			return group.GroupData{}, err
		}
		mf := strings.Fields(line)
		if len(mf) != 2 {
			return group.GroupData{}, ErrBadMember
		}
		row, err1 := strconv.Atoi(mf[0])
		start, err2 := strconv.Atoi(mf[1])
		if err1 != nil || err2 != nil {
			return group.GroupData{}, ErrBadMember
		}
		members = append(members, group.Member{Row: row, Start: start})
	}

	return group.GroupData{Centroid: centroid, Members: members}, nil
}

func nextLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("groupfile: load: %w", err)
		}

		return "", ErrTruncated
	}

	return sc.Text(), nil
}
