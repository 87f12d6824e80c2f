package ascii

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// TextConfig describes how plain-text halo catalogues are laid out.
type TextConfig struct {
	// Comment is the prefix of header lines.
	Comment string
	// MaxLineSize is the longest line the reader will accept, in bytes.
	MaxLineSize int
	// Columns names the columns of files which don't carry their own
	// "columns = ..." header.
	Columns []string
	// CenterProperty is the property name the x, y, z columns are exposed
	// as.
	CenterProperty string
}

// DefaultConfig is the TextConfig used when none is given.
var DefaultConfig = TextConfig{
	Comment:        "#",
	MaxLineSize:    1 << 16,
	Columns:        []string{"halo_number", "x", "y", "z", "progenitor"},
	CenterProperty: "shrink_center",
}

// required lists the column names every catalogue needs.
var required = []string{"halo_number", "x", "y", "z", "progenitor"}

// table is the parsed content of a single catalogue file.
type table struct {
	label   string
	z, t    float64
	columns map[string]int
	names   []string
	rows    [][]float64
}

// readTable parses a catalogue. Header lines have the form
// "# key = value"; the keys label, z, t and columns are understood and all
// others are ignored.
func readTable(rd io.Reader, config TextConfig) (*table, error) {
	tab := &table{}
	names := config.Columns
	seen := map[int]int{}

	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 4096), config.MaxLineSize)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, config.Comment) {
			key, val, ok := headerField(text[len(config.Comment):])
			if !ok {
				continue
			}
			var err error
			switch key {
			case "label":
				tab.label = val
			case "z":
				tab.z, err = strconv.ParseFloat(val, 64)
			case "t":
				tab.t, err = strconv.ParseFloat(val, 64)
			case "columns":
				names = strings.Fields(val)
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: header %s: %w", line, key, err)
			}
			continue
		}

		if tab.columns == nil {
			var err error
			if tab.columns, err = columnIndices(names); err != nil {
				return nil, err
			}
			tab.names = names
		}

		fields := strings.Fields(text)
		if len(fields) != len(tab.names) {
			return nil, fmt.Errorf("line %d has %d columns, but %d are named",
				line, len(fields), len(tab.names))
		}
		row := make([]float64, len(fields))
		for i := range fields {
			var err error
			if row[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", line, i, err)
			}
		}
		for _, name := range []string{"halo_number", "progenitor"} {
			if x := row[tab.columns[name]]; !isInt(x) {
				return nil, fmt.Errorf("line %d: %s %g is not an integer",
					line, name, x)
			}
		}
		number := int(row[tab.columns["halo_number"]])
		if prev, ok := seen[number]; ok {
			return nil, fmt.Errorf("line %d: halo %d already defined on line %d",
				line, number, prev)
		}
		seen[number] = line
		tab.rows = append(tab.rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tab.columns == nil {
		var err error
		if tab.columns, err = columnIndices(names); err != nil {
			return nil, err
		}
		tab.names = names
	}
	return tab, nil
}

// isInt reports whether x is a whole number exactly representable as an int.
func isInt(x float64) bool {
	return x == math.Trunc(x) && math.Abs(x) <= 1<<53
}

// headerField splits " key = value" into its parts.
func headerField(s string) (key, val string, ok bool) {
	key, val, ok = strings.Cut(s, "=")
	return strings.TrimSpace(key), strings.TrimSpace(val), ok
}

// columnIndices converts column names into a lookup table and checks that
// every required column is present.
func columnIndices(names []string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, name := range names {
		if _, ok := idx[name]; ok {
			return nil, fmt.Errorf("column %q appears twice", name)
		}
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}
