package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/floats"

	"genomap/internal/genotype"
	"genomap/internal/layout"
	"genomap/internal/nn"
	"genomap/pkg/genomap"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "layout":
		return runLayout(out)
	case "activations":
		return runActivations(out)
	case "random":
		return runRandom(args[1:], out)
	case "encode":
		return runEncode(args[1:], out)
	case "decode":
		return runDecode(args[1:], out)
	case "roundtrip":
		return runRoundTrip(args[1:], out)
	case "inspect":
		return runInspect(args[1:], out)
	case "save":
		return runSave(ctx, args[1:], out)
	case "get":
		return runGet(ctx, args[1:], out)
	case "list":
		return runList(ctx, args[1:], out)
	case "delete":
		return runDelete(ctx, args[1:], out)
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: genomapctl <layout|activations|random|encode|decode|roundtrip|inspect|save|get|list|delete> [flags]", msg)
}

func runLayout(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tLAYER\tNEURON\tDIRECTION")
	for _, seg := range genomap.Layout() {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\n", seg.Start, seg.End()-1, seg.Layer, seg.Neuron, seg.Direction)
	}
	return tw.Flush()
}

func runActivations(out io.Writer) error {
	for _, name := range nn.ListActivations() {
		fmt.Fprintln(out, name)
	}
	return nil
}

func runRandom(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("random", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	seed := fs.Int64("seed", 0, "random seed (0 uses the clock)")
	genesOnly := fs.Bool("genotype", false, "print the encoded genotype instead of the network")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}

	s := *seed
	if s == 0 && cfg.seed != nil {
		s = *cfg.seed
	}
	if s == 0 {
		s = time.Now().UnixNano()
	}
	codec, err := genotype.NewCodec(layout.Canonical(), cfg.options.Activations)
	if err != nil {
		return err
	}
	net, err := codec.RandomNetwork(newRand(s))
	if err != nil {
		return err
	}
	if !*genesOnly {
		return writeJSON(out, net)
	}
	g, err := codec.Encode(net)
	if err != nil {
		return err
	}
	return writeJSON(out, g)
}

func runEncode(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	in := fs.String("in", "", "network JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("encode requires -in")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	var net genomap.Network
	if err := json.Unmarshal(data, &net); err != nil {
		return fmt.Errorf("parse network %s: %w", *in, err)
	}
	g, err := genomap.Encode(net)
	if err != nil {
		return err
	}
	return writeJSON(out, g)
}

func runDecode(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	genes := fs.String("genes", "", "comma separated genes")
	in := fs.String("in", "", "genotype JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	g, err := readGenotype(*genes, *in)
	if err != nil {
		return err
	}

	codec, err := genotype.NewCodec(layout.Canonical(), cfg.options.Activations)
	if err != nil {
		return err
	}
	net, err := codec.Decode(g)
	if err != nil {
		return err
	}
	return writeJSON(out, net)
}

func runRoundTrip(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("roundtrip", flag.ContinueOnError)
	genes := fs.String("genes", "", "comma separated genes")
	in := fs.String("in", "", "genotype JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := readGenotype(*genes, *in)
	if err != nil {
		return err
	}

	net, err := genomap.Decode(g)
	if err != nil {
		return err
	}
	again, err := genomap.Encode(net)
	if err != nil {
		return err
	}
	changes, err := genotype.Diff(layout.Canonical(), g, again)
	if err != nil {
		return err
	}
	if len(changes) > 0 {
		for _, change := range changes {
			fmt.Fprintf(out, "index=%d %s before=%v after=%v\n", change.Index, change.Position, change.Before, change.After)
		}
		return fmt.Errorf("round trip changed %d genes", len(changes))
	}
	fmt.Fprintf(out, "roundtrip ok genes=%d\n", len(again))
	return nil
}

func runInspect(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	genes := fs.String("genes", "", "comma separated genes")
	in := fs.String("in", "", "genotype JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := readGenotype(*genes, *in)
	if err != nil {
		return err
	}
	if len(g) != genomap.GenotypeSize {
		return fmt.Errorf("%w: got=%d want=%d", genomap.ErrLengthMismatch, len(g), genomap.GenotypeSize)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANGE\tSLOT\tMIN\tMAX\tL2")
	for _, seg := range genomap.Layout() {
		values := g[seg.Start:seg.End()]
		fmt.Fprintf(tw, "%d-%d\t%s[%d].%s\t%.6g\t%.6g\t%.6g\n",
			seg.Start, seg.End()-1, seg.Layer, seg.Neuron, seg.Direction,
			floats.Min(values), floats.Max(values), floats.Norm(values, 2))
	}
	fmt.Fprintf(tw, "all\t\t%.6g\t%.6g\t%.6g\n", floats.Min(g), floats.Max(g), floats.Norm(g, 2))
	return tw.Flush()
}

func runSave(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	label := fs.String("label", "", "record label")
	genes := fs.String("genes", "", "comma separated genes")
	in := fs.String("in", "", "genotype JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := openClient(fs, common)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	g, err := readGenotype(*genes, *in)
	if err != nil {
		return err
	}
	record, err := client.SaveGenotype(ctx, *label, g)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved id=%s genes=%d\n", record.ID, len(record.Genes))
	return nil
}

func runGet(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	id := fs.String("id", "", "record id")
	network := fs.Bool("network", false, "print the decoded network")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("get requires -id")
	}
	client, err := openClient(fs, common)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *network {
		net, err := client.LoadNetwork(ctx, *id)
		if err != nil {
			return err
		}
		return writeJSON(out, net)
	}
	record, err := client.Get(ctx, *id)
	if err != nil {
		return err
	}
	return writeJSON(out, record)
}

func runList(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := openClient(fs, common)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	records, err := client.List(ctx)
	if err != nil {
		return err
	}
	for _, record := range records {
		fmt.Fprintf(out, "id=%s label=%s created_at=%s activation=%s/%s\n",
			record.ID, record.Label, record.CreatedAt.Format(time.RFC3339), record.Activation, record.OutputActivation)
	}
	return nil
}

func runDelete(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	id := fs.String("id", "", "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("delete requires -id")
	}
	client, err := openClient(fs, common)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted id=%s\n", *id)
	return nil
}

func openClient(fs *flag.FlagSet, common commonFlags) (*genomap.Client, error) {
	cfg, err := common.resolve(fs)
	if err != nil {
		return nil, err
	}
	return genomap.New(cfg.options)
}

func readGenotype(genes, path string) (genomap.Genotype, error) {
	switch {
	case genes != "" && path != "":
		return nil, errors.New("use either -genes or -in, not both")
	case genes != "":
		return parseGenes(genes)
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var g genomap.Genotype
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("parse genotype %s: %w", path, err)
		}
		return g, nil
	default:
		return nil, errors.New("genes are required: pass -genes or -in")
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
