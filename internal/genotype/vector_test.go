package genotype

import (
	"errors"
	"math"
	"testing"

	"genomap/internal/layout"
	"genomap/internal/model"
)

func TestEqualComparesBits(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		a, b model.Genotype
		want bool
	}{
		{name: "same", a: model.Genotype{1, 2}, b: model.Genotype{1, 2}, want: true},
		{name: "nan", a: model.Genotype{nan}, b: model.Genotype{nan}, want: true},
		{name: "signed-zero", a: model.Genotype{0}, b: model.Genotype{math.Copysign(0, -1)}, want: false},
		{name: "length", a: model.Genotype{1}, b: model.Genotype{1, 1}, want: false},
		{name: "value", a: model.Genotype{1, 2}, b: model.Genotype{1, 3}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b); got != tc.want {
				t.Fatalf("unexpected equality: got=%t want=%t", got, tc.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := model.Genotype{1, 2, 3}
	c := Clone(g)
	c[0] = 9
	if g[0] != 1 {
		t.Fatalf("clone aliases source: %v", g)
	}
	if Clone(nil) != nil {
		t.Fatal("expected nil clone of nil genotype")
	}
}

func TestDistance(t *testing.T) {
	d, err := Distance(model.Genotype{0, 0}, model.Genotype{3, 4})
	if err != nil {
		t.Fatalf("distance: %v", err)
	}
	if math.Abs(d-5) > 1e-12 {
		t.Fatalf("unexpected distance: got=%f want=5", d)
	}
	if _, err := Distance(model.Genotype{0}, model.Genotype{0, 1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got: %v", err)
	}
}

func TestDiffLocatesChanges(t *testing.T) {
	a := sequentialGenotype()
	b := Clone(a)
	b[4], b[25] = b[25], b[4]

	changes, err := Diff(layout.Canonical(), a, b)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("unexpected change count: got=%d want=2", len(changes))
	}
	first := changes[0]
	if first.Index != 4 || first.Position.Layer != model.LayerHidden || first.Position.Neuron != 1 || first.Before != 5 || first.After != 26 {
		t.Fatalf("unexpected first change: %+v", first)
	}
	second := changes[1]
	if second.Index != 25 || second.Position.Layer != model.LayerOutput || second.Position.Direction != model.WeightsOut {
		t.Fatalf("unexpected second change: %+v", second)
	}

	if _, err := Diff(layout.Canonical(), a, a[:10]); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got: %v", err)
	}
}
