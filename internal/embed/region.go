// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package embed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bedbase-dev/bedbase/pkg/errors"
)

// Region is one genomic interval of a BED file.
type Region struct {
	Chrom string
	Start int
	End   int
}

// String renders the region in UCSC position notation.
func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// ParseBEDFile reads the BED file at path into regions.
func ParseBEDFile(path string) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEmbedInputInvalid,
			"opening region file", errors.Field("path", path))
	}
	defer f.Close() //nolint:errcheck

	return ParseBED(f)
}

// ParseBED reads BED-formatted regions from r. Comment, track and
// browser lines are skipped. Each remaining line needs at least the
// chrom, start and end columns; extra columns are ignored.
func ParseBED(r io.Reader) ([]Region, error) {
	var regions []Region

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, errors.Errorf(errors.CodeEmbedInputInvalid,
				"line %d: expected at least 3 columns, got %d", lineNo, len(fields))
		}

		start, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Errorf(errors.CodeEmbedInputInvalid,
				"line %d: bad start %q", lineNo, fields[1])
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.Errorf(errors.CodeEmbedInputInvalid,
				"line %d: bad end %q", lineNo, fields[2])
		}
		if end < start {
			return nil, errors.Errorf(errors.CodeEmbedInputInvalid,
				"line %d: end %d before start %d", lineNo, end, start)
		}

		regions = append(regions, Region{Chrom: fields[0], Start: start, End: end})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeEmbedInputInvalid, "reading region lines")
	}

	if len(regions) == 0 {
		return nil, errors.New(errors.CodeEmbedInputInvalid, "no regions found")
	}
	return regions, nil
}
