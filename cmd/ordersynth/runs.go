package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/wisevaishu/ordersynth/internal/ledger"
)

func listRuns(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	path := fs.String("history", "", "bbolt file written by -history")
	fs.Parse(args)

	if *path == "" {
		log.Fatal("history is required")
	}
	if _, err := os.Stat(*path); err != nil {
		log.Fatalf("[LEDGER] %v", err)
	}

	history, err := ledger.Open(*path)
	if err != nil {
		log.Fatalf("[LEDGER] %v", err)
	}
	defer history.Close()

	runs, err := history.List()
	if err != nil {
		log.Printf("[LEDGER] Failed to list runs: %v", err)
		return
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return
	}

	fmt.Printf("%-36s %-10s %12s %10s %-16s %s\n", "RUN ID", "STATUS", "ROWS", "SIZE", "STARTED", "OUTPUT")
	fmt.Println("─────────────────────────────────────────────────────────────────────────────────────────────────────")
	for _, run := range runs {
		fmt.Printf("%-36s %-10s %12s %10s %-16s %s\n",
			run.ID,
			run.Status,
			humanize.Comma(int64(run.Rows)),
			humanize.Bytes(uint64(run.Bytes)),
			humanize.Time(run.StartedAt),
			run.Path)
		if run.Error != "" {
			fmt.Printf("  error: %s\n", run.Error)
		}
	}
}
