package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/wisevaishu/ordersynth/internal/ledger"
	"github.com/wisevaishu/ordersynth/pkg/catalog"
	"github.com/wisevaishu/ordersynth/pkg/synth"
)

/*generates synthetic e-commerce orders as CSV, ready for a bulk load into an orders table*/

// standaloneRecordCount keeps a plain invocation quick; the library default is larger.
const standaloneRecordCount = 100_000

var (
	outputPath  = flag.String("output", synth.DefaultOutputPath, "Output CSV file path (overwritten if it exists)")
	recordCount = flag.Int("count", standaloneRecordCount, "Number of order rows to generate")
	seed        = flag.Uint64("seed", 0, "Random seed for reproducible output (0 = random)")
	catalogPath = flag.String("catalog", "", "Optional JSON file replacing the built-in product and city catalog")
	historyPath = flag.String("history", "", "Optional bbolt file recording each run")
	showBar     = flag.Bool("progress", true, "Show a progress bar on stderr")
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "runs" {
		listRuns(os.Args[2:])
		return
	}

	flag.Usage = usage
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := newSynthesizer()
	if err != nil {
		log.Fatalf("[SYNTH] %v", err)
	}

	opts := []synth.RunOption{synth.WithSynthesizer(s)}
	if *showBar && *recordCount > 0 {
		bar := newProgressBar(*recordCount)
		defer bar.Finish()
		opts = append(opts, synth.WithProgress(bar))
	}

	var history *ledger.Ledger
	var run *ledger.Run
	if *historyPath != "" {
		history, err = ledger.Open(*historyPath)
		if err != nil {
			log.Fatalf("[LEDGER] %v", err)
		}
		defer history.Close()

		run, err = history.Begin(*outputPath, *recordCount, *seed)
		if err != nil {
			log.Fatalf("[LEDGER] %v", err)
		}
	}

	res, genErr := synth.Generate(ctx, *outputPath, *recordCount, opts...)

	if history != nil {
		if err := history.Finish(run, res, genErr); err != nil {
			log.Printf("[LEDGER] Error recording run %s: %v", run.ID, err)
		}
	}

	if genErr != nil {
		// deferred closes do not run after Fatal
		if history != nil {
			history.Close()
		}
		log.Fatalf("[SYNTH] Generation failed: %v", genErr)
	}
}

func newSynthesizer() (*synth.Synthesizer, error) {
	var opts []synth.Option

	if *seed != 0 {
		opts = append(opts, synth.WithSeed(*seed))
	}

	if *catalogPath != "" {
		f, err := os.Open(*catalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		defer f.Close()

		c, err := catalog.Load(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", *catalogPath, err)
		}
		opts = append(opts, synth.WithCatalog(c))
	}

	return synth.NewSynthesizer(opts...)
}

func newProgressBar(count int) *progressbar.ProgressBar {
	return progressbar.NewOptions(count,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage:\n")
	fmt.Fprintf(out, "  ordersynth [flags]             generate orders\n")
	fmt.Fprintf(out, "  ordersynth runs -history FILE  list recorded runs\n\n")
	fmt.Fprintf(out, "Flags:\n")
	flag.PrintDefaults()
}
