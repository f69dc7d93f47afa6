package layout

import "genomap/internal/model"

// CanonicalSize is the genotype length of the canonical topology.
const CanonicalSize = 26

// Traversal order is input-in, hidden-in, hidden-out, output-out. Hidden
// neuron 0 is the bias unit and has no incoming slot.
var canonicalSegments = []Segment{
	{Start: 0, Length: 1, Layer: model.LayerInput, Neuron: 0, Direction: model.WeightsIn},
	{Start: 1, Length: 1, Layer: model.LayerInput, Neuron: 1, Direction: model.WeightsIn},
	{Start: 2, Length: 1, Layer: model.LayerInput, Neuron: 2, Direction: model.WeightsIn},
	{Start: 3, Length: 1, Layer: model.LayerInput, Neuron: 3, Direction: model.WeightsIn},

	{Start: 4, Length: 4, Layer: model.LayerHidden, Neuron: 1, Direction: model.WeightsIn},
	{Start: 8, Length: 4, Layer: model.LayerHidden, Neuron: 2, Direction: model.WeightsIn},
	{Start: 12, Length: 4, Layer: model.LayerHidden, Neuron: 3, Direction: model.WeightsIn},
	{Start: 16, Length: 4, Layer: model.LayerHidden, Neuron: 4, Direction: model.WeightsIn},

	{Start: 20, Length: 1, Layer: model.LayerHidden, Neuron: 0, Direction: model.WeightsOut},
	{Start: 21, Length: 1, Layer: model.LayerHidden, Neuron: 1, Direction: model.WeightsOut},
	{Start: 22, Length: 1, Layer: model.LayerHidden, Neuron: 2, Direction: model.WeightsOut},
	{Start: 23, Length: 1, Layer: model.LayerHidden, Neuron: 3, Direction: model.WeightsOut},
	{Start: 24, Length: 1, Layer: model.LayerHidden, Neuron: 4, Direction: model.WeightsOut},

	{Start: 25, Length: 1, Layer: model.LayerOutput, Neuron: 0, Direction: model.WeightsOut},
}

var canonical = MustNew(model.CanonicalTopology, canonicalSegments)

// Canonical returns the shared layout for model.CanonicalTopology.
func Canonical() *Layout {
	return canonical
}
