package gso

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/lderrors"
	"github.com/lightdock/lightdock-go/prng"
)

// Interval is a per-dimension [lo, hi] bound.
type Interval struct {
	Lo, Hi float64
}

// BoundingBox is a per-dimension bound used by InitRandom.
type BoundingBox []Interval

// InitRandom draws numGlowworms uniform samples within box, one per
// dimension.
func InitRandom(box BoundingBox, numGlowworms int, rng prng.Source) []coordinates.Coordinates {
	positions := make([]coordinates.Coordinates, numGlowworms)
	for i := range positions {
		pos := coordinates.New(len(box))
		for d, interval := range box {
			pos[d] = interval.Lo + rng.Float64()*(interval.Hi-interval.Lo)
		}
		positions[i] = pos
	}
	return positions
}

// InitFromFile reads one glowworm position per line, whitespace-separated
// reals, from path.
// Every line must have the same column count; failures surface as
// lderrors.GSOCoordinatesError (wrong column count, non-numeric token, or
// missing file).
func InitFromFile(path string) ([]coordinates.Coordinates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &lderrors.GSOCoordinatesError{File: path, Reason: err.Error()}
	}
	defer f.Close()

	var positions []coordinates.Coordinates
	dimension := -1
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if dimension == -1 {
			dimension = len(fields)
		} else if len(fields) != dimension {
			return nil, &lderrors.GSOCoordinatesError{File: path, Line: lineNo, Reason: "wrong column count"}
		}
		pos := coordinates.New(len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &lderrors.GSOCoordinatesError{File: path, Line: lineNo, Reason: "non-numeric value " + field}
			}
			pos[i] = v
		}
		positions = append(positions, pos)
	}
	if err := scanner.Err(); err != nil {
		return nil, &lderrors.GSOCoordinatesError{File: path, Reason: err.Error()}
	}
	return positions, nil
}
