package nn

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Built-in activation names. Siglog is the logistic sigmoid used by decoded networks.
const (
	ActivationSiglog   = "siglog"
	ActivationHypertan = "hypertan"
	ActivationLinear   = "linear"
	ActivationStep     = "step"
)

var (
	ErrActivationExists   = errors.New("activation already registered")
	ErrActivationNotFound = errors.New("activation not found")
)

type ActivationFunc func(x float64) float64

var activations = struct {
	mu    sync.RWMutex
	byKey map[string]ActivationFunc
}{
	byKey: make(map[string]ActivationFunc),
}

func init() {
	registerBuiltins()
}

func registerBuiltins() {
	MustRegisterActivation(ActivationSiglog, func(x float64) float64 {
		return 1.0 / (1.0 + math.Exp(-x))
	})
	MustRegisterActivation(ActivationHypertan, math.Tanh)
	MustRegisterActivation(ActivationLinear, func(x float64) float64 { return x })
	MustRegisterActivation(ActivationStep, func(x float64) float64 {
		if x >= 0 {
			return 1
		}
		return 0
	})
}

// RegisterActivation makes fn selectable by name for new networks and codecs.
// Names are never replaced once registered.
func RegisterActivation(name string, fn ActivationFunc) error {
	switch {
	case name == "":
		return errors.New("activation name is required")
	case fn == nil:
		return fmt.Errorf("activation %s: function is required", name)
	}

	activations.mu.Lock()
	defer activations.mu.Unlock()

	if _, taken := activations.byKey[name]; taken {
		return fmt.Errorf("%w: %s", ErrActivationExists, name)
	}
	activations.byKey[name] = fn
	return nil
}

func MustRegisterActivation(name string, fn ActivationFunc) {
	if err := RegisterActivation(name, fn); err != nil {
		panic(err)
	}
}

func GetActivation(name string) (ActivationFunc, error) {
	activations.mu.RLock()
	fn, ok := activations.byKey[name]
	activations.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActivationNotFound, name)
	}
	return fn, nil
}

// ListActivations returns registered names in sorted order.
func ListActivations() []string {
	activations.mu.RLock()
	names := make([]string, 0, len(activations.byKey))
	for name := range activations.byKey {
		names = append(names, name)
	}
	activations.mu.RUnlock()

	sort.Strings(names)
	return names
}

func resetActivationsForTests() {
	activations.mu.Lock()
	activations.byKey = make(map[string]ActivationFunc)
	activations.mu.Unlock()
	registerBuiltins()
}
