package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"genomap/internal/genotype"
	"genomap/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	genotypes   map[string]model.GenotypeRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.genotypes = make(map[string]model.GenotypeRecord)
	return nil
}

func (s *MemoryStore) SaveGenotype(_ context.Context, record model.GenotypeRecord) error {
	if err := ValidateRecord(record); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	record.Genes = genotype.Clone(record.Genes)
	s.genotypes[record.ID] = record
	return nil
}

func (s *MemoryStore) GetGenotype(_ context.Context, id string) (model.GenotypeRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.genotypes[id]
	if !ok {
		return model.GenotypeRecord{}, false, nil
	}
	record.Genes = genotype.Clone(record.Genes)
	return record, true, nil
}

func (s *MemoryStore) ListGenotypes(_ context.Context) ([]model.GenotypeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.GenotypeRecord, 0, len(s.genotypes))
	for _, record := range s.genotypes {
		record.Genes = genotype.Clone(record.Genes)
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) DeleteGenotype(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.genotypes, id)
	return nil
}
