package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"genomap/internal/genotype"
	"genomap/internal/layout"
	"genomap/internal/model"
	"genomap/internal/nn"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// NewGenotypeRecord stamps a copy of genes with a fresh ID and the current
// schema and codec versions.
func NewGenotypeRecord(label string, act nn.Activations, genes model.Genotype) model.GenotypeRecord {
	return model.GenotypeRecord{
		VersionedRecord:  model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:               uuid.NewString(),
		Label:            label,
		Activation:       act.Hidden,
		OutputActivation: act.Output,
		Genes:            genotype.Clone(genes),
		CreatedAt:        time.Now().UTC(),
	}
}

// ValidateRecord rejects records that could not be decoded by the canonical
// codec.
func ValidateRecord(record model.GenotypeRecord) error {
	if record.ID == "" {
		return errors.New("genotype record id is required")
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return err
	}
	if want := layout.Canonical().Size(); len(record.Genes) != want {
		return fmt.Errorf("genotype %s: %w: got=%d want=%d", record.ID, genotype.ErrLengthMismatch, len(record.Genes), want)
	}
	for i, gene := range record.Genes {
		// JSON payloads cannot carry NaN or infinities.
		if math.IsNaN(gene) || math.IsInf(gene, 0) {
			return fmt.Errorf("genotype %s: gene %d is not finite: %v", record.ID, i, gene)
		}
	}
	return nil
}

func EncodeGenotypeRecord(record model.GenotypeRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodeGenotypeRecord(data []byte) (model.GenotypeRecord, error) {
	var record model.GenotypeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.GenotypeRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.GenotypeRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
