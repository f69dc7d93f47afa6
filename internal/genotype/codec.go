// Package genotype maps network weights to and from flat genotypes following
// a layout contract.
package genotype

import (
	"errors"
	"fmt"
	"math/rand"

	"genomap/internal/layout"
	"genomap/internal/model"
	"genomap/internal/nn"
)

var (
	ErrShapeMismatch  = errors.New("network shape mismatch")
	ErrLengthMismatch = errors.New("genotype length mismatch")
)

// Codec encodes and decodes networks for a single layout. It holds no mutable
// state and may be shared between goroutines.
type Codec struct {
	layout      *layout.Layout
	activations nn.Activations
}

var defaultCodec = &Codec{layout: layout.Canonical(), activations: nn.DefaultActivations}

// NewCodec returns a codec whose decoded networks use act.
func NewCodec(l *layout.Layout, act nn.Activations) (*Codec, error) {
	if l == nil {
		return nil, errors.New("layout is required")
	}
	for _, name := range []string{act.Hidden, act.Output} {
		if _, err := nn.GetActivation(name); err != nil {
			return nil, err
		}
	}
	return &Codec{layout: l, activations: act}, nil
}

// Default is the canonical-topology codec with siglog activations.
func Default() *Codec {
	return defaultCodec
}

func Encode(net model.Network) (model.Genotype, error) {
	return defaultCodec.Encode(net)
}

func Decode(g model.Genotype) (model.Network, error) {
	return defaultCodec.Decode(g)
}

func (c *Codec) Layout() *layout.Layout {
	return c.layout
}

func (c *Codec) Activations() nn.Activations {
	return c.activations
}

// Encode concatenates the network's weight vectors in layout order. The
// network is rejected, never truncated or padded, when its shape differs
// from the layout.
func (c *Codec) Encode(net model.Network) (model.Genotype, error) {
	if err := c.CheckShape(net); err != nil {
		return nil, err
	}

	out := make(model.Genotype, 0, c.layout.Size())
	for _, seg := range c.layout.Segments() {
		out = append(out, neuronAt(net, seg.Layer, seg.Neuron).Weights(seg.Direction)...)
	}
	if len(out) != c.layout.Size() {
		return nil, fmt.Errorf("%w: encoded %d values, layout size %d", layout.ErrIndexContractViolation, len(out), c.layout.Size())
	}
	return out, nil
}

// Decode builds a new network from g. The length is checked before any
// slicing and every vector is copied out of g.
func (c *Codec) Decode(g model.Genotype) (model.Network, error) {
	if len(g) != c.layout.Size() {
		return model.Network{}, fmt.Errorf("%w: got=%d want=%d", ErrLengthMismatch, len(g), c.layout.Size())
	}

	source := nn.WeightSourceFunc(func(layer model.LayerKind, neuron int, dir model.Direction) ([]float64, error) {
		if c.layout.Expected(layer, neuron, dir) == 0 {
			return nil, nil
		}
		start, length, err := c.layout.Range(layer, neuron, dir)
		if err != nil {
			return nil, err
		}
		weights := make([]float64, length)
		copy(weights, g[start:start+length])
		return weights, nil
	})
	return nn.NewNetwork(c.layout.Topology(), c.activations, source)
}

// CheckShape reports ErrShapeMismatch unless every layer and weight vector of
// net has the size the layout expects. Vectors without a slot must be empty.
func (c *Codec) CheckShape(net model.Network) error {
	topology := c.layout.Topology()
	if len(net.Hidden) != topology.HiddenLayers {
		return fmt.Errorf("%w: hidden layers got=%d want=%d", ErrShapeMismatch, len(net.Hidden), topology.HiddenLayers)
	}

	layers := []struct {
		kind  model.LayerKind
		layer model.Layer
	}{
		{kind: model.LayerInput, layer: net.Input},
		{kind: model.LayerHidden, layer: net.Hidden[0]},
		{kind: model.LayerOutput, layer: net.Output},
	}
	for _, entry := range layers {
		want := c.layout.LayerSize(entry.kind)
		if len(entry.layer.Neurons) != want {
			return fmt.Errorf("%w: %s neurons got=%d want=%d", ErrShapeMismatch, entry.kind, len(entry.layer.Neurons), want)
		}
		for i, neuron := range entry.layer.Neurons {
			for _, dir := range []model.Direction{model.WeightsIn, model.WeightsOut} {
				got := len(neuron.Weights(dir))
				if want := c.layout.Expected(entry.kind, i, dir); got != want {
					return fmt.Errorf("%w: %s[%d].%s length got=%d want=%d", ErrShapeMismatch, entry.kind, i, dir, got, want)
				}
			}
		}
	}
	return nil
}

// RandomNetwork builds a network with uniform random weights in the codec's
// topology.
func (c *Codec) RandomNetwork(rng *rand.Rand) (model.Network, error) {
	return nn.NewNetwork(c.layout.Topology(), c.activations, nn.RandomWeights(c.layout, rng))
}

func RandomNetwork(rng *rand.Rand) (model.Network, error) {
	return defaultCodec.RandomNetwork(rng)
}

func neuronAt(net model.Network, kind model.LayerKind, index int) model.Neuron {
	switch kind {
	case model.LayerInput:
		return net.Input.Neurons[index]
	case model.LayerHidden:
		return net.Hidden[0].Neurons[index]
	default:
		return net.Output.Neurons[index]
	}
}
