package genotype

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"genomap/internal/layout"
	"genomap/internal/model"
)

func Clone(g model.Genotype) model.Genotype {
	if g == nil {
		return nil
	}
	out := make(model.Genotype, len(g))
	copy(out, g)
	return out
}

// Equal compares bit patterns, so NaN payloads and signed zeros must match.
func Equal(a, b model.Genotype) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}

// Distance is the Euclidean distance between two genotypes of equal length.
func Distance(a, b model.Genotype) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: got=%d want=%d", ErrLengthMismatch, len(b), len(a))
	}
	return floats.Distance(a, b, 2), nil
}

// Change is one differing gene between two genotypes.
type Change struct {
	Index    int
	Position layout.Position
	Before   float64
	After    float64
}

// Diff lists the genes that differ between a and b, located through l.
func Diff(l *layout.Layout, a, b model.Genotype) ([]Change, error) {
	if len(a) != l.Size() || len(b) != l.Size() {
		return nil, fmt.Errorf("%w: got=%d,%d want=%d", ErrLengthMismatch, len(a), len(b), l.Size())
	}
	var changes []Change
	for i := range a {
		if math.Float64bits(a[i]) == math.Float64bits(b[i]) {
			continue
		}
		pos, err := l.Locate(i)
		if err != nil {
			return nil, err
		}
		changes = append(changes, Change{Index: i, Position: pos, Before: a[i], After: b[i]})
	}
	return changes, nil
}
