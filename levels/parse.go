package levels

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	ErrRowLength   = errors.New("row length mismatch")
	ErrUnknownTile = errors.New("unknown tile value")
	ErrOpenBorder  = errors.New("level border is not solid")
	ErrNoSpawn     = errors.New("no valid player spawn")
	ErrEmptyGrid   = errors.New("empty grid")
)

// ParseGrid reads rows of comma separated signed integers.
func ParseGrid(r io.Reader) ([][]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}

	var rows [][]int
	for y, rec := range records {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		row := make([]int, len(rec))
		for x, tok := range rec {
			v, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return nil, fmt.Errorf("grid: row %d col %d: %w", y, x, err)
			}
			row[x] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d: %w", y, len(row), len(rows[0]), ErrRowLength)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid: %w", ErrEmptyGrid)
	}
	return rows, nil
}

// ParsePlayer reads "x y angle" (spaces or commas) with the angle in radians.
func ParsePlayer(r io.Reader) (Spawn, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Spawn{}, fmt.Errorf("player: %w", err)
	}
	fields := splitFields(string(data))
	if len(fields) != 3 {
		return Spawn{}, fmt.Errorf("player: want x y angle, got %d fields: %w", len(fields), ErrNoSpawn)
	}
	var vals [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Spawn{}, fmt.Errorf("player: field %d: %w", i, err)
		}
		vals[i] = v
	}
	return Spawn{X: vals[0], Y: vals[1], Angle: vals[2]}, nil
}

// DefaultBackground is used when a level has no background file.
func DefaultBackground() Background {
	return Background{
		Ceiling: colornames.Dimgray,
		Floor:   colornames.Gray,
		Sky:     -1,
	}
}

// ParseBackground reads the ceiling colour, floor colour and an optional
// sky index, one per line. Colours are #rrggbb or named web colours.
func ParseBackground(r io.Reader) (Background, error) {
	bg := DefaultBackground()
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") && !isHexColor(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return bg, fmt.Errorf("background: %w", err)
	}
	if len(lines) < 2 || len(lines) > 3 {
		return bg, fmt.Errorf("background: want ceiling, floor and optional sky, got %d lines", len(lines))
	}

	var err error
	if bg.Ceiling, err = ParseColor(lines[0]); err != nil {
		return bg, fmt.Errorf("background: ceiling: %w", err)
	}
	if bg.Floor, err = ParseColor(lines[1]); err != nil {
		return bg, fmt.Errorf("background: floor: %w", err)
	}
	if len(lines) == 3 {
		if bg.Sky, err = strconv.Atoi(lines[2]); err != nil {
			return bg, fmt.Errorf("background: sky: %w", err)
		}
	}
	return bg, nil
}

// ParseColor accepts #rrggbb, #rrggbbaa or a colornames name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !isHexColor(s) {
		return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	n := len(s) - 1
	return n == 6 || n == 8
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
