package nn

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"

	"genomap/internal/layout"
	"genomap/internal/model"
)

var ErrUnsupportedTopology = errors.New("unsupported topology")

// Activations selects the nonlinearity of the hidden and output layers.
type Activations struct {
	Hidden string
	Output string
}

// DefaultActivations is the sigmoid-family choice used for decoded networks.
var DefaultActivations = Activations{Hidden: ActivationSiglog, Output: ActivationSiglog}

// WeightSource supplies the weight vector of one neuron during construction.
// A nil vector means the neuron has no such weights.
type WeightSource interface {
	Weights(layer model.LayerKind, neuron int, dir model.Direction) ([]float64, error)
}

type WeightSourceFunc func(layer model.LayerKind, neuron int, dir model.Direction) ([]float64, error)

func (f WeightSourceFunc) Weights(layer model.LayerKind, neuron int, dir model.Direction) ([]float64, error) {
	return f(layer, neuron, dir)
}

// NewNetwork builds a network for topology, pulling every weight vector from
// source before returning. Bias slots are added to the input and hidden layers.
func NewNetwork(topology model.Topology, act Activations, source WeightSource) (model.Network, error) {
	if topology.HiddenLayers != 1 {
		return model.Network{}, fmt.Errorf("%w: hidden layers=%d", ErrUnsupportedTopology, topology.HiddenLayers)
	}
	if topology.Inputs <= 0 || topology.HiddenNeurons <= 0 || topology.Outputs <= 0 {
		return model.Network{}, fmt.Errorf("%w: %+v", ErrUnsupportedTopology, topology)
	}
	if source == nil {
		return model.Network{}, errors.New("weight source is required")
	}
	for _, name := range []string{act.Hidden, act.Output} {
		if _, err := GetActivation(name); err != nil {
			return model.Network{}, err
		}
	}

	sizes := topology.LayerSizes()
	input, err := buildLayer(model.LayerInput, sizes[0], source)
	if err != nil {
		return model.Network{}, err
	}
	hidden, err := buildLayer(model.LayerHidden, sizes[1], source)
	if err != nil {
		return model.Network{}, err
	}
	output, err := buildLayer(model.LayerOutput, sizes[2], source)
	if err != nil {
		return model.Network{}, err
	}

	return model.Network{
		Activation:       act.Hidden,
		OutputActivation: act.Output,
		Input:            input,
		Hidden:           []model.Layer{hidden},
		Output:           output,
	}, nil
}

func buildLayer(kind model.LayerKind, size int, source WeightSource) (model.Layer, error) {
	neurons := make([]model.Neuron, size)
	for i := range neurons {
		in, err := source.Weights(kind, i, model.WeightsIn)
		if err != nil {
			return model.Layer{}, fmt.Errorf("%s neuron %d: %w", kind, i, err)
		}
		out, err := source.Weights(kind, i, model.WeightsOut)
		if err != nil {
			return model.Layer{}, fmt.Errorf("%s neuron %d: %w", kind, i, err)
		}
		neurons[i] = model.Neuron{WeightsIn: in, WeightsOut: out}
	}
	return model.Layer{Neurons: neurons}, nil
}

// RandomWeights fills every slot of l with uniform weights in [-0.5, 0.5).
func RandomWeights(l *layout.Layout, rng *rand.Rand) WeightSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return WeightSourceFunc(func(layer model.LayerKind, neuron int, dir model.Direction) ([]float64, error) {
		n := l.Expected(layer, neuron, dir)
		if n == 0 {
			return nil, nil
		}
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = rng.Float64() - 0.5
		}
		return weights, nil
	})
}

// Forward evaluates a single-hidden-layer network. Input neuron 0 and hidden
// neuron 0 are bias units fed with 1. Each input is scaled by its neuron's
// incoming weight, hidden outgoing weights feed the outputs, and each output
// neuron's outgoing weight scales its activated value.
func Forward(net model.Network, inputs []float64) ([]float64, error) {
	if len(net.Hidden) != 1 {
		return nil, fmt.Errorf("%w: hidden layers=%d", ErrUnsupportedTopology, len(net.Hidden))
	}
	if len(inputs) != len(net.Input.Neurons)-1 {
		return nil, fmt.Errorf("input width mismatch: got=%d want=%d", len(inputs), len(net.Input.Neurons)-1)
	}
	hiddenFn, err := GetActivation(net.Activation)
	if err != nil {
		return nil, err
	}
	outputFn, err := GetActivation(net.OutputActivation)
	if err != nil {
		return nil, err
	}

	in := make([]float64, len(net.Input.Neurons))
	for i, neuron := range net.Input.Neurons {
		if len(neuron.WeightsIn) != 1 {
			return nil, fmt.Errorf("input neuron %d: want 1 incoming weight, got %d", i, len(neuron.WeightsIn))
		}
		x := 1.0
		if i > 0 {
			x = inputs[i-1]
		}
		in[i] = x * neuron.WeightsIn[0]
	}

	hiddenNeurons := net.Hidden[0].Neurons
	hidden := make([]float64, len(hiddenNeurons))
	for j, neuron := range hiddenNeurons {
		if j == 0 {
			hidden[j] = 1
			continue
		}
		if len(neuron.WeightsIn) != len(in) {
			return nil, fmt.Errorf("hidden neuron %d: want %d incoming weights, got %d", j, len(in), len(neuron.WeightsIn))
		}
		hidden[j] = hiddenFn(floats.Dot(neuron.WeightsIn, in))
	}

	out := make([]float64, len(net.Output.Neurons))
	column := make([]float64, len(hiddenNeurons))
	for k, neuron := range net.Output.Neurons {
		for j, h := range hiddenNeurons {
			if len(h.WeightsOut) != len(out) {
				return nil, fmt.Errorf("hidden neuron %d: want %d outgoing weights, got %d", j, len(out), len(h.WeightsOut))
			}
			column[j] = h.WeightsOut[k]
		}
		if len(neuron.WeightsOut) != 1 {
			return nil, fmt.Errorf("output neuron %d: want 1 outgoing weight, got %d", k, len(neuron.WeightsOut))
		}
		out[k] = outputFn(floats.Dot(column, hidden)) * neuron.WeightsOut[0]
	}
	return out, nil
}
