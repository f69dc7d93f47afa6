package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"genomap/internal/genotype"
	"genomap/internal/nn"
)

func TestMemoryStoreGenotypeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	record := NewGenotypeRecord("best", nn.DefaultActivations, sequentialGenes())
	if err := store.SaveGenotype(ctx, record); err != nil {
		t.Fatalf("save genotype: %v", err)
	}

	loaded, ok, err := store.GetGenotype(ctx, record.ID)
	if err != nil {
		t.Fatalf("get genotype: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted genotype")
	}
	if loaded.Label != "best" || !genotype.Equal(loaded.Genes, record.Genes) {
		t.Fatalf("unexpected genotype: %+v", loaded)
	}

	loaded.Genes[0] = 99
	again, _, err := store.GetGenotype(ctx, record.ID)
	if err != nil {
		t.Fatalf("get genotype: %v", err)
	}
	if again.Genes[0] != 1 {
		t.Fatal("store returned aliased genes")
	}
}

func TestMemoryStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	first := NewGenotypeRecord("first", nn.DefaultActivations, sequentialGenes())
	second := NewGenotypeRecord("second", nn.DefaultActivations, sequentialGenes())
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	if err := store.SaveGenotype(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	if err := store.SaveGenotype(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	records, err := store.ListGenotypes(ctx)
	if err != nil {
		t.Fatalf("list genotypes: %v", err)
	}
	if len(records) != 2 || records[0].ID != first.ID || records[1].ID != second.ID {
		t.Fatalf("unexpected list order: %+v", records)
	}

	if err := store.DeleteGenotype(ctx, first.ID); err != nil {
		t.Fatalf("delete genotype: %v", err)
	}
	if _, ok, err := store.GetGenotype(ctx, first.ID); err != nil || ok {
		t.Fatalf("expected deleted genotype, ok=%t err=%v", ok, err)
	}
}

func TestMemoryStoreRejectsInvalidRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	record := NewGenotypeRecord("short", nn.DefaultActivations, sequentialGenes()[:10])
	if err := store.SaveGenotype(ctx, record); !errors.Is(err, genotype.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got: %v", err)
	}
}

func TestMemoryStoreRequiresInit(t *testing.T) {
	store := NewMemoryStore()
	record := NewGenotypeRecord("early", nn.DefaultActivations, sequentialGenes())
	if err := store.SaveGenotype(context.Background(), record); err == nil {
		t.Fatal("expected uninitialized store error")
	}
}
