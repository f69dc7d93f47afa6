package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"genomap/internal/nn"
	"genomap/internal/storage"
	"genomap/pkg/genomap"
)

// fileConfig is the optional YAML file passed with -config. Flags given on the
// command line take precedence over file values.
type fileConfig struct {
	Store            string `yaml:"store"`
	DBPath           string `yaml:"db_path"`
	Activation       string `yaml:"activation"`
	OutputActivation string `yaml:"output_activation"`
	Seed             *int64 `yaml:"seed"`
}

type commonFlags struct {
	configPath       *string
	store            *string
	dbPath           *string
	activation       *string
	outputActivation *string
}

func registerCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath:       fs.String("config", "", "YAML config file"),
		store:            fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite"),
		dbPath:           fs.String("db-path", "genomap.db", "sqlite database path"),
		activation:       fs.String("activation", nn.ActivationSiglog, "hidden layer activation"),
		outputActivation: fs.String("output-activation", nn.ActivationSiglog, "output layer activation"),
	}
}

type resolvedConfig struct {
	options genomap.Options
	seed    *int64
}

func (c commonFlags) resolve(fs *flag.FlagSet) (resolvedConfig, error) {
	var file fileConfig
	if *c.configPath != "" {
		loaded, err := loadFileConfig(*c.configPath)
		if err != nil {
			return resolvedConfig{}, err
		}
		file = loaded
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(name, flagValue, fileValue string) string {
		if set[name] || fileValue == "" {
			return flagValue
		}
		return fileValue
	}

	return resolvedConfig{
		options: genomap.Options{
			StoreKind: pick("store", *c.store, file.Store),
			DBPath:    pick("db-path", *c.dbPath, file.DBPath),
			Activations: nn.Activations{
				Hidden: pick("activation", *c.activation, file.Activation),
				Output: pick("output-activation", *c.outputActivation, file.OutputActivation),
			},
		},
		seed: file.Seed,
	}, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseGenes accepts comma or whitespace separated finite numbers.
func parseGenes(raw string) (genomap.Genotype, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, errors.New("no genes given")
	}
	genes := make(genomap.Genotype, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("gene %d: %w", i, err)
		}
		// Networks and records are written as JSON, which has no NaN or infinities.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("gene %d is not finite: %s", i, field)
		}
		genes = append(genes, v)
	}
	return genes, nil
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
