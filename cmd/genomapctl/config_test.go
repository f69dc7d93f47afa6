package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"genomap/internal/nn"
)

func TestResolveConfigFileAndFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genomap.yaml")
	payload := "store: sqlite\ndb_path: /tmp/pop.db\nactivation: hypertan\nseed: 11\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	common := registerCommonFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-store", "memory"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.options.StoreKind != "memory" {
		t.Fatalf("expected flag to override store, got %s", cfg.options.StoreKind)
	}
	if cfg.options.DBPath != "/tmp/pop.db" {
		t.Fatalf("unexpected db path: %s", cfg.options.DBPath)
	}
	if cfg.options.Activations.Hidden != nn.ActivationHypertan || cfg.options.Activations.Output != nn.ActivationSiglog {
		t.Fatalf("unexpected activations: %+v", cfg.options.Activations)
	}
	if cfg.seed == nil || *cfg.seed != 11 {
		t.Fatalf("unexpected seed: %v", cfg.seed)
	}
}

func TestResolveConfigMissingFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	common := registerCommonFlags(fs)
	if err := fs.Parse([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := common.resolve(fs); err == nil {
		t.Fatal("expected missing config error")
	}
}

func TestParseGenes(t *testing.T) {
	genes, err := parseGenes("1, 2.5 -3\t4e2")
	if err != nil {
		t.Fatalf("parse genes: %v", err)
	}
	want := []float64{1, 2.5, -3, 400}
	if len(genes) != len(want) {
		t.Fatalf("unexpected genes: got=%v want=%v", genes, want)
	}
	for i := range want {
		if genes[i] != want[i] {
			t.Fatalf("unexpected gene %d: got=%f want=%f", i, genes[i], want[i])
		}
	}

	if _, err := parseGenes(""); err == nil {
		t.Fatal("expected empty genes error")
	}
	if _, err := parseGenes("1,x"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseGenesRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"1,NaN", "Inf,2", "1,-Inf", "+inf"} {
		if _, err := parseGenes(raw); err == nil || !strings.Contains(err.Error(), "not finite") {
			t.Fatalf("%q: expected non-finite gene error, got: %v", raw, err)
		}
	}
}
