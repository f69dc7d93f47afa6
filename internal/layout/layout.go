// Package layout holds the index-exact contract that places every network
// weight at a fixed position of a flat genotype.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"genomap/internal/model"
)

var ErrIndexContractViolation = errors.New("index contract violation")

// Segment maps the genotype range [Start, Start+Length) onto one neuron
// weight vector.
type Segment struct {
	Start     int             `json:"start"`
	Length    int             `json:"length"`
	Layer     model.LayerKind `json:"layer"`
	Neuron    int             `json:"neuron"`
	Direction model.Direction `json:"direction"`
}

func (s Segment) End() int {
	return s.Start + s.Length
}

// Position is the decoded meaning of a single genotype index.
type Position struct {
	Layer     model.LayerKind
	Neuron    int
	Direction model.Direction
	Offset    int
}

func (p Position) String() string {
	return fmt.Sprintf("%s[%d].%s[%d]", p.Layer, p.Neuron, p.Direction, p.Offset)
}

type slotKey struct {
	layer     model.LayerKind
	neuron    int
	direction model.Direction
}

// Layout is immutable once built and safe for concurrent reads.
type Layout struct {
	topology model.Topology
	sizes    map[model.LayerKind]int
	segments []Segment
	slots    map[slotKey]int
	size     int
}

// New validates segments against topology. Segments must start at 0, be
// contiguous and name every (layer, neuron, direction) at most once.
// Vectors without a segment have no slot and stay empty.
func New(topology model.Topology, segments []Segment) (*Layout, error) {
	if topology.Inputs <= 0 || topology.HiddenNeurons <= 0 || topology.Outputs <= 0 {
		return nil, fmt.Errorf("invalid topology: %+v", topology)
	}
	if topology.HiddenLayers != 1 {
		return nil, fmt.Errorf("unsupported hidden layer count: %d", topology.HiddenLayers)
	}
	if len(segments) == 0 {
		return nil, errors.New("layout requires at least one segment")
	}

	layerSizes := topology.LayerSizes()
	l := &Layout{
		topology: topology,
		sizes: map[model.LayerKind]int{
			model.LayerInput:  layerSizes[0],
			model.LayerHidden: layerSizes[1],
			model.LayerOutput: layerSizes[2],
		},
		segments: make([]Segment, len(segments)),
		slots:    make(map[slotKey]int, len(segments)),
	}
	copy(l.segments, segments)

	next := 0
	for i, seg := range l.segments {
		if seg.Start != next {
			return nil, fmt.Errorf("segment %d starts at %d, want %d", i, seg.Start, next)
		}
		if seg.Length <= 0 {
			return nil, fmt.Errorf("segment %d has non-positive length %d", i, seg.Length)
		}
		layerSize, ok := l.sizes[seg.Layer]
		if !ok {
			return nil, fmt.Errorf("segment %d has unknown layer %q", i, seg.Layer)
		}
		if seg.Neuron < 0 || seg.Neuron >= layerSize {
			return nil, fmt.Errorf("segment %d neuron %d outside %s layer of %d", i, seg.Neuron, seg.Layer, layerSize)
		}
		if seg.Direction != model.WeightsIn && seg.Direction != model.WeightsOut {
			return nil, fmt.Errorf("segment %d has unknown direction %q", i, seg.Direction)
		}
		key := slotKey{layer: seg.Layer, neuron: seg.Neuron, direction: seg.Direction}
		if prev, dup := l.slots[key]; dup {
			return nil, fmt.Errorf("segment %d duplicates segment %d (%s[%d].%s)", i, prev, seg.Layer, seg.Neuron, seg.Direction)
		}
		l.slots[key] = i
		next = seg.End()
	}
	l.size = next
	return l, nil
}

func MustNew(topology model.Topology, segments []Segment) *Layout {
	l, err := New(topology, segments)
	if err != nil {
		panic(err)
	}
	return l
}

// Size is the genotype length the layout describes.
func (l *Layout) Size() int {
	return l.size
}

func (l *Layout) Topology() model.Topology {
	return l.topology
}

// LayerSize returns the neuron count of kind including its bias slot.
func (l *Layout) LayerSize(kind model.LayerKind) int {
	return l.sizes[kind]
}

// Segments returns a copy of the table in traversal order.
func (l *Layout) Segments() []Segment {
	out := make([]Segment, len(l.segments))
	copy(out, l.segments)
	return out
}

// Locate reports which weight a genotype index denotes.
func (l *Layout) Locate(index int) (Position, error) {
	if index < 0 || index >= l.size {
		return Position{}, fmt.Errorf("%w: index %d outside [0,%d)", ErrIndexContractViolation, index, l.size)
	}
	i := sort.Search(len(l.segments), func(i int) bool {
		return l.segments[i].End() > index
	})
	seg := l.segments[i]
	return Position{
		Layer:     seg.Layer,
		Neuron:    seg.Neuron,
		Direction: seg.Direction,
		Offset:    index - seg.Start,
	}, nil
}

// Range returns the genotype range holding the given weight vector.
func (l *Layout) Range(layer model.LayerKind, neuron int, dir model.Direction) (start, length int, err error) {
	i, ok := l.slots[slotKey{layer: layer, neuron: neuron, direction: dir}]
	if !ok {
		return 0, 0, fmt.Errorf("%w: no slot for %s[%d].%s", ErrIndexContractViolation, layer, neuron, dir)
	}
	seg := l.segments[i]
	return seg.Start, seg.Length, nil
}

// Expected is the length the given vector must have, 0 when it has no slot.
func (l *Layout) Expected(layer model.LayerKind, neuron int, dir model.Direction) int {
	i, ok := l.slots[slotKey{layer: layer, neuron: neuron, direction: dir}]
	if !ok {
		return 0
	}
	return l.segments[i].Length
}
