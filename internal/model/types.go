package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// LayerKind names a layer role inside a feed-forward network.
type LayerKind string

const (
	LayerInput  LayerKind = "input"
	LayerHidden LayerKind = "hidden"
	LayerOutput LayerKind = "output"
)

// Direction selects one of a neuron's two weight vectors.
type Direction string

const (
	WeightsIn  Direction = "in"
	WeightsOut Direction = "out"
)

// Topology describes layer sizes without bias slots. Construction adds one
// bias slot to the input layer and to every hidden layer.
type Topology struct {
	Inputs        int `json:"inputs" yaml:"inputs"`
	HiddenLayers  int `json:"hidden_layers" yaml:"hidden_layers"`
	HiddenNeurons int `json:"hidden_neurons" yaml:"hidden_neurons"`
	Outputs       int `json:"outputs" yaml:"outputs"`
}

// CanonicalTopology is 3 inputs, one hidden layer of 4 neurons and 1 output.
var CanonicalTopology = Topology{Inputs: 3, HiddenLayers: 1, HiddenNeurons: 4, Outputs: 1}

// LayerSizes returns neuron counts including bias slots, input layer first.
func (t Topology) LayerSizes() []int {
	sizes := make([]int, 0, t.HiddenLayers+2)
	sizes = append(sizes, t.Inputs+1)
	for i := 0; i < t.HiddenLayers; i++ {
		sizes = append(sizes, t.HiddenNeurons+1)
	}
	return append(sizes, t.Outputs)
}

type Neuron struct {
	WeightsIn  []float64 `json:"weights_in"`
	WeightsOut []float64 `json:"weights_out"`
}

// Weights returns the vector for dir.
func (n Neuron) Weights(dir Direction) []float64 {
	if dir == WeightsOut {
		return n.WeightsOut
	}
	return n.WeightsIn
}

type Layer struct {
	Neurons []Neuron `json:"neurons"`
}

type Network struct {
	Activation       string  `json:"activation"`
	OutputActivation string  `json:"output_activation"`
	Input            Layer   `json:"input"`
	Hidden           []Layer `json:"hidden"`
	Output           Layer   `json:"output"`
}

// Genotype is a flat weight vector whose meaning comes only from position.
type Genotype []float64

type GenotypeRecord struct {
	VersionedRecord
	ID               string    `json:"id"`
	Label            string    `json:"label,omitempty"`
	Activation       string    `json:"activation"`
	OutputActivation string    `json:"output_activation"`
	Genes            Genotype  `json:"genes"`
	CreatedAt        time.Time `json:"created_at"`
}
