package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/LeandroLuccerini/similarity/pkg/batch"
	"github.com/LeandroLuccerini/similarity/pkg/similarity"
)

func cmdBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	kind := fs.String("type", string(similarity.KindStringFuzzy), "similarity type")
	input := fs.String("input", "-", "CSV file of pairs (- for stdin)")
	dbPath := fs.String("db", "", "SQLite store (default: batch.db_path from config)")
	workers := fs.Int("workers", 0, "scoring goroutines (default: batch.workers from config)")
	desc := fs.String("desc", "", "free-text run description")
	delim := fs.String("delimiter", "", "CSV delimiter (default from config)")
	encoding := fs.String("encoding", "", "input encoding, e.g. iso-8859-1 (default UTF-8)")
	noHeader := fs.Bool("no-header", false, "input has no header row; use the first two columns")
	fs.Parse(args)

	logger := newLogger(os.Stderr)
	cfg := mustLoadConfig(*cfgPath, logger)

	format := cfg.Batch.Format
	if *delim != "" {
		format.Delimiter = *delim
	}
	if *encoding != "" {
		format.Encoding = *encoding
	}
	if *noHeader {
		format.HasHeader = false
	}
	if *dbPath == "" {
		*dbPath = cfg.Batch.DBPath
	}
	if *workers <= 0 {
		*workers = cfg.Batch.Workers
	}

	sim, err := similarity.New(similarity.Kind(*kind), cfg.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var in io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	st, err := batch.OpenStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run, err := batch.ScoreFile(ctx, in, batch.Job{
		Kind:        similarity.Kind(*kind),
		Similarity:  sim,
		Format:      format,
		Workers:     *workers,
		Description: *desc,
	}, st, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("run %s: %d pairs, %d failed (stored in %s)\n", run.ID, run.Pairs, run.Failed, *dbPath)
}

func cmdRuns(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	dbPath := fs.String("db", "", "SQLite store (default: batch.db_path from config)")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	fs.Parse(args)

	logger := newLogger(os.Stderr)
	cfg := mustLoadConfig(*cfgPath, logger)
	if *dbPath == "" {
		*dbPath = cfg.Batch.DBPath
	}

	st, err := batch.OpenStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if fs.NArg() == 1 {
		scores, err := st.ListScores(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if err := printScores(os.Stdout, scores, *asJSON); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := st.ListRuns()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := printRuns(os.Stdout, runs, *asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printRuns(w io.Writer, runs []batch.Run, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(runs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tTYPE\tCREATED\tPAIRS\tFAILED\tDESCRIPTION")
	for _, r := range runs {
		created := time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", r.ID, r.Kind, created, r.Pairs, r.Failed, r.Description)
	}
	return tw.Flush()
}

func printScores(w io.Writer, scores []batch.Result, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(scores)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tA\tB\tSCORE\tERROR")
	for _, s := range scores {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.3f\t%s\n", s.Line, s.A, s.B, s.Score, s.Err)
	}
	return tw.Flush()
}
