package storage

import (
	"context"

	"genomap/internal/model"
)

// Store persists genotype records keyed by ID.
type Store interface {
	Init(ctx context.Context) error
	SaveGenotype(ctx context.Context, record model.GenotypeRecord) error
	GetGenotype(ctx context.Context, id string) (model.GenotypeRecord, bool, error)
	ListGenotypes(ctx context.Context) ([]model.GenotypeRecord, error)
	DeleteGenotype(ctx context.Context, id string) error
}
