package nn

import (
	"errors"
	"math"
	"testing"
)

func TestRegisterAndGetActivation(t *testing.T) {
	resetActivationsForTests()
	t.Cleanup(resetActivationsForTests)

	if err := RegisterActivation("quad", func(x float64) float64 { return x * x }); err != nil {
		t.Fatalf("register activation: %v", err)
	}
	fn, err := GetActivation("quad")
	if err != nil {
		t.Fatalf("get activation: %v", err)
	}
	if got := fn(3); got != 9 {
		t.Fatalf("unexpected activation result: got=%f want=9", got)
	}
}

func TestRegisterActivationValidation(t *testing.T) {
	resetActivationsForTests()
	t.Cleanup(resetActivationsForTests)

	if err := RegisterActivation("", func(x float64) float64 { return x }); err == nil {
		t.Fatal("expected empty name error")
	}
	if err := RegisterActivation("nil", nil); err == nil {
		t.Fatal("expected nil function error")
	}
}

func TestRegisterActivationDuplicate(t *testing.T) {
	resetActivationsForTests()
	t.Cleanup(resetActivationsForTests)

	if err := RegisterActivation("dup", func(x float64) float64 { return x }); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := RegisterActivation("dup", func(x float64) float64 { return x }); !errors.Is(err, ErrActivationExists) {
		t.Fatalf("expected ErrActivationExists, got: %v", err)
	}
}

func TestGetActivationNotFound(t *testing.T) {
	resetActivationsForTests()
	t.Cleanup(resetActivationsForTests)

	_, err := GetActivation("missing")
	if !errors.Is(err, ErrActivationNotFound) {
		t.Fatalf("expected ErrActivationNotFound, got: %v", err)
	}
}

func TestListActivationsSorted(t *testing.T) {
	resetActivationsForTests()
	t.Cleanup(resetActivationsForTests)

	if err := RegisterActivation("b", func(x float64) float64 { return x }); err != nil {
		t.Fatalf("register b: %v", err)
	}
	if err := RegisterActivation("a", func(x float64) float64 { return x }); err != nil {
		t.Fatalf("register a: %v", err)
	}

	names := ListActivations()
	if len(names) < 6 {
		t.Fatalf("expected built-ins plus custom activations, got: %+v", names)
	}
	if names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected activation list: %+v", names)
	}
}

func TestBuiltinActivationValues(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: ActivationSiglog, x: 0, want: 0.5},
		{name: ActivationHypertan, x: 0, want: 0},
		{name: ActivationLinear, x: -2.5, want: -2.5},
		{name: ActivationStep, x: -0.1, want: 0},
		{name: ActivationStep, x: 0, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fn, err := GetActivation(tc.name)
			if err != nil {
				t.Fatalf("get builtin activation %s: %v", tc.name, err)
			}
			if got := fn(tc.x); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("unexpected value: got=%f want=%f", got, tc.want)
			}
		})
	}
}

func TestBuiltinActivationsCannotBeReplaced(t *testing.T) {
	resetActivationsForTests()
	t.Cleanup(resetActivationsForTests)

	err := RegisterActivation(ActivationSiglog, func(x float64) float64 { return x })
	if !errors.Is(err, ErrActivationExists) {
		t.Fatalf("expected ErrActivationExists, got: %v", err)
	}
	fn, err := GetActivation(ActivationSiglog)
	if err != nil {
		t.Fatalf("get siglog: %v", err)
	}
	if got := fn(0); got != 0.5 {
		t.Fatalf("siglog replaced: got=%f want=0.5", got)
	}
}
