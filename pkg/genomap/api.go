// Package genomap converts networks of the canonical 3-4-1 topology to and
// from flat 26-gene genotypes and stores genotypes for evolutionary search.
package genomap

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"genomap/internal/genotype"
	"genomap/internal/layout"
	"genomap/internal/model"
	"genomap/internal/nn"
	"genomap/internal/storage"
)

const (
	defaultDBPath = "genomap.db"

	// GenotypeSize is the number of genes of a canonical genotype.
	GenotypeSize = layout.CanonicalSize
)

type (
	Network     = model.Network
	Layer       = model.Layer
	Neuron      = model.Neuron
	Genotype    = model.Genotype
	Record      = model.GenotypeRecord
	Segment     = layout.Segment
	Position    = layout.Position
	Activations = nn.Activations
)

var (
	ErrShapeMismatch          = genotype.ErrShapeMismatch
	ErrLengthMismatch         = genotype.ErrLengthMismatch
	ErrIndexContractViolation = layout.ErrIndexContractViolation
	ErrNotFound               = errors.New("genotype not found")
)

func Encode(net Network) (Genotype, error) {
	return genotype.Encode(net)
}

func Decode(g Genotype) (Network, error) {
	return genotype.Decode(g)
}

// Layout returns the canonical index table in traversal order.
func Layout() []Segment {
	return layout.Canonical().Segments()
}

func Locate(index int) (Position, error) {
	return layout.Canonical().Locate(index)
}

// RandomNetwork returns a canonical network with weights in [-0.5, 0.5).
func RandomNetwork(seed int64) (Network, error) {
	return genotype.RandomNetwork(rand.New(rand.NewSource(seed)))
}

type Options struct {
	StoreKind string
	DBPath    string
	// Activations used when encoding and decoding; defaults to siglog for both layers.
	Activations Activations
}

type Client struct {
	store storage.Store
	codec *genotype.Codec

	initOnce sync.Once
	initErr  error
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	act := opts.Activations
	if act == (Activations{}) {
		act = nn.DefaultActivations
	}

	codec, err := genotype.NewCodec(layout.Canonical(), act)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{store: store, codec: codec}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	c.initOnce.Do(func() {
		c.initErr = c.store.Init(ctx)
	})
	return c.initErr
}

// SaveNetwork encodes net and stores the genotype under a new ID.
func (c *Client) SaveNetwork(ctx context.Context, label string, net Network) (Record, error) {
	g, err := c.codec.Encode(net)
	if err != nil {
		return Record{}, err
	}
	act := Activations{Hidden: net.Activation, Output: net.OutputActivation}
	if act.Hidden == "" || act.Output == "" {
		act = c.codec.Activations()
	}
	// Records must stay loadable, so the names have to resolve now.
	if _, err := genotype.NewCodec(layout.Canonical(), act); err != nil {
		return Record{}, err
	}
	return c.save(ctx, label, act, g)
}

// SaveGenotype stores g after checking that it decodes.
func (c *Client) SaveGenotype(ctx context.Context, label string, g Genotype) (Record, error) {
	if _, err := c.codec.Decode(g); err != nil {
		return Record{}, err
	}
	return c.save(ctx, label, c.codec.Activations(), g)
}

func (c *Client) save(ctx context.Context, label string, act Activations, g Genotype) (Record, error) {
	if err := c.Init(ctx); err != nil {
		return Record{}, err
	}
	record := storage.NewGenotypeRecord(label, act, g)
	if err := c.store.SaveGenotype(ctx, record); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	if err := c.Init(ctx); err != nil {
		return Record{}, err
	}
	record, ok, err := c.store.GetGenotype(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return record, nil
}

// LoadNetwork decodes a stored genotype with the activations it was saved with.
func (c *Client) LoadNetwork(ctx context.Context, id string) (Network, error) {
	record, err := c.Get(ctx, id)
	if err != nil {
		return Network{}, err
	}
	codec, err := genotype.NewCodec(layout.Canonical(), Activations{Hidden: record.Activation, Output: record.OutputActivation})
	if err != nil {
		return Network{}, fmt.Errorf("genotype %s: %w", id, err)
	}
	return codec.Decode(record.Genes)
}

func (c *Client) List(ctx context.Context) ([]Record, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c.store.ListGenotypes(ctx)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.Init(ctx); err != nil {
		return err
	}
	return c.store.DeleteGenotype(ctx, id)
}
