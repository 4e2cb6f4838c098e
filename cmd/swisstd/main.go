/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mikeb26/swisstd/internal"
	"github.com/mikeb26/swisstd/internal/metrics"
	"github.com/mikeb26/swisstd/internal/report"
	"github.com/mikeb26/swisstd/s3store"
	"github.com/mikeb26/swisstd/swiss"
	"github.com/mikeb26/swisstd/uschess"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"simulate": handleSimulate,
	"import":   handleImport,
	"events":   handleEvents,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handleSimulate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	var f simulateFlags
	fs.IntVar(&f.players, "players", 32, "Number of players (1-100000)")
	fs.IntVar(&f.rounds, "rounds", 5, "Number of rounds (1-64)")
	fs.Int64Var(&f.seed, "seed", 1, "Seed for synthesized results")
	fs.StringVar(&f.algorithm, "algo", swiss.AlgorithmOptimal,
		"Pairing algorithm: optimal or exhaustive")
	fs.IntVar(&f.runs, "runs", 1, "Number of independent events to run (1-256)")
	configPath := fs.String("config", "", "YAML scenario file")
	verbose := fs.Bool("verbose", false, "Print every round's pairings")
	xlsxPath := fs.String("xlsx", "", "Write final standings to this XLSX file")
	metricsAddr := fs.String("metrics-addr", "",
		"Serve Prometheus metrics on this address, e.g. :9090")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := defaultScenario()
	if *configPath != "" {
		var err error
		cfg, err = loadScenario(*configPath)
		if err != nil {
			log.Fatalf("Error loading scenario: %v", err)
		}
	}
	applyFlags(&cfg, fs, f)
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid scenario: %v\n", err)
		fs.Usage()
		os.Exit(1)
	}

	var m metrics.Metrics = metrics.Noop{}
	var served chan error
	if *metricsAddr != "" {
		ln, err := net.Listen("tcp", *metricsAddr)
		if err != nil {
			log.Fatalf("Error listening on %v: %v", *metricsAddr, err)
		}
		m = metrics.NewService()
		sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		served = make(chan error, 1)
		go func() {
			served <- serveMetrics(sigCtx, ln, metrics.NewMetricsHandler())
		}()
	}

	runs, err := runSimulations(ctx, cfg, m, *verbose)
	if err != nil {
		log.Fatalf("Error simulating: %v", err)
	}
	for i, run := range runs {
		if len(runs) > 1 {
			fmt.Printf("=== Run %d (seed %d) ===\n", i+1, cfg.Seed+int64(i))
		}
		fmt.Print(run.output)
		if *xlsxPath != "" {
			path := *xlsxPath
			if len(runs) > 1 {
				path = numberedPath(path, i+1)
			}
			if err := writeXLSX(path, run.tour); err != nil {
				log.Fatalf("Error writing %v: %v", path, err)
			}
		}
	}

	if served != nil {
		fmt.Fprintf(os.Stderr, "Serving metrics on %v until interrupted\n",
			*metricsAddr)
		if err := <-served; err != nil {
			log.Printf("swisstd.metrics: server stopped: %v", err)
		}
	}
}

// serveMetrics serves h on ln until ctx is done, then shuts the server
// down gracefully.
func serveMetrics(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func handleImport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	var opts importOptions
	fs.IntVar(&opts.eventID, "uscftid", 0, "USCF rated event id to import")
	fs.StringVar(&opts.htmlPath, "html", "", "Saved HTML cross table to import")
	fs.StringVar(&opts.section, "section", "",
		"Section name (optional for single-section events)")
	fs.IntVar(&opts.rounds, "rounds", -1,
		"Replay only this many rounds (default all)")
	fs.StringVar(&opts.algorithm, "algo", swiss.AlgorithmOptimal,
		"Pairing algorithm for the predicted next round")
	fs.BoolVar(&opts.xtable, "xtable", false, "Also print the cross table")
	xlsxPath := fs.String("xlsx", "", "Write standings to this XLSX file")
	archive := fs.Bool("archive", false, "Store the report in S3")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if opts.eventID <= 0 && opts.htmlPath == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --uscftid ID or --html file.")
		fs.Usage()
		os.Exit(1)
	}

	ev, err := loadEvent(ctx, opts)
	if err != nil {
		log.Fatalf("Error loading event: %v", err)
	}
	res, err := importEvent(ev, opts)
	if err != nil {
		log.Fatalf("Error replaying event: %v", err)
	}
	fmt.Print(res.report)

	if *xlsxPath != "" {
		if err := writeXLSX(*xlsxPath, res.tour); err != nil {
			log.Fatalf("Error writing %v: %v", *xlsxPath, err)
		}
	}
	if *archive {
		store := s3store.New(internal.ArchiveBucket, "reports", true, true)
		if err := store.Init(ctx); err != nil {
			log.Fatalf("Error opening archive: %v", err)
		}
		key := res.archiveKey()
		if err := store.Put(ctx, key, []byte(res.report), "text/plain"); err != nil {
			log.Fatalf("Error archiving report: %v", err)
		}
		fmt.Printf("Archived to s3://%v%v\n", store.Bucket(), store.ObjectKey(key))
	}
}

func handleEvents(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	affiliate := fs.String("affiliate", "", "USCF affiliate id, e.g. A5000408")
	limit := fs.Int("limit", 20, "Maximum number of events to list (1-500)")
	sections := fs.Bool("sections", false,
		"Fetch each listed event and show which sections can be imported")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *affiliate == "" {
		fmt.Fprintln(os.Stderr, "Please provide an --affiliate ID.")
		fs.Usage()
		os.Exit(1)
	}
	// enforce bounds
	if *limit < 1 {
		*limit = 1
	} else if *limit > 500 {
		*limit = 500
	}

	client := uschess.NewClient(ctx)
	events, err := client.GetAffiliateEvents(ctx, *affiliate)
	if err != nil {
		log.Fatalf("Error fetching events for %v: %v", *affiliate, err)
	}
	if len(events) > *limit {
		events = events[:*limit]
	}
	if !*sections {
		printEvents(os.Stdout, events)
	} else {
		for _, event := range events {
			printEvents(os.Stdout, []uschess.Event{event})
			ev, err := client.FetchCrossTables(ctx, event.ID)
			if err != nil {
				fmt.Printf("    unavailable: %v\n", err)
				continue
			}
			printSections(os.Stdout, ev.Summarize())
		}
	}
	fmt.Printf("\nRun '%s import --uscftid <EventID>' to replay an event\n",
		os.Args[0])
}

func writeXLSX(path string, tour *swiss.Tournament) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteStandingsXLSX(f, tour); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// numberedPath turns "out.xlsx" into "out-3.xlsx".
func numberedPath(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%v-%d%v", strings.TrimSuffix(path, ext), n, ext)
}
