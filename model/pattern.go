package model

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ParsePattern reads a grid with one row per line.
//
// '0' and '.' are dead cells, '1', 'O' and '*' are alive. Spaces, tabs, commas
// and square brackets are ignored, so both "010" and "[0, 1, 0]" parse. Blank
// lines and lines starting with '#' or '!' are skipped.
func ParsePattern(r io.Reader) (Grid, error) {
	var (
		g       Grid
		scanner = bufio.NewScanner(r)
		lineNo  = 0
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		row := make([]int, 0, len(line))
		for _, ch := range line {
			switch ch {
			case '0', '.':
				row = append(row, 0)
			case '1', 'O', '*':
				row = append(row, 1)
			case ' ', '\t', ',', '[', ']':
			default:
				return nil, errors.Wrapf(ErrInvalidCell, "[ParsePattern] line %d: unexpected %q", lineNo, ch)
			}
		}
		if len(row) == 0 {
			continue
		}
		g = append(g, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParsePattern] failed to read pattern")
	}

	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(err, "[ParsePattern] invalid pattern")
	}
	return g, nil
}

// LoadPattern parses the pattern stored in the named file
func LoadPattern(filename string) (Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadPattern] failed to open file: %+v", filename)
	}
	defer f.Close()

	g, err := ParsePattern(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadPattern] failed to parse file: %+v", filename)
	}
	return g, nil
}
