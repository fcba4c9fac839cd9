// Package xfm implements the transform math of the arbitration engine:
// a text codec for 4x4 affine matrices, pseudo-inverse composition of the
// relative transform between two registration estimates, and the
// decomposition of that transform into translation, rotation, scale, and
// shear.
package xfm

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ahrav/go-xformgate/internal/domain"
)

// affineElements is the number of values in a row-major 4x4 matrix file.
const affineElements = 16

// Parse decodes a row-major 4x4 affine matrix from plain-text numeric data,
// with elements separated by any whitespace or newlines. This is the on-disk
// format exchanged with the upstream registration collaborators.
func Parse(data []byte) (domain.Affine, error) {
	fields := strings.Fields(string(data))
	if len(fields) != affineElements {
		return domain.Affine{}, fmt.Errorf("expected %d matrix elements, got %d", affineElements, len(fields))
	}

	var a domain.Affine
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return domain.Affine{}, fmt.Errorf("matrix element %d (%q): %w", i, f, err)
		}
		a[i/4][i%4] = v
	}
	return a, nil
}

// Format encodes a transform in the same plain-text layout accepted by
// Parse: four rows of four values, full float64 precision so that a
// round trip reproduces the matrix bit for bit.
func Format(a domain.Affine) []byte {
	var buf bytes.Buffer
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if j > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(strconv.FormatFloat(a[i][j], 'g', -1, 64))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Load reads and parses a transform file.
func Load(path string) (domain.Affine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Affine{}, fmt.Errorf("read transform %s: %w", path, err)
	}
	a, err := Parse(data)
	if err != nil {
		return domain.Affine{}, fmt.Errorf("parse transform %s: %w", path, err)
	}
	return a, nil
}

// Write stores a transform at the given path in the plain-text format.
func Write(path string, a domain.Affine) error {
	if err := os.WriteFile(path, Format(a), 0o644); err != nil {
		return fmt.Errorf("write transform %s: %w", path, err)
	}
	return nil
}
