package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Cyclone1070/songscout-backend/internal/scraper"
	"github.com/Cyclone1070/songscout-backend/internal/songscraper"
	"github.com/Cyclone1070/songscout-backend/jobs"
)

func main() {
	queries := flag.String("queries", "lofi hip hop,happy songs playlist,rick astley", "Comma-separated search terms to probe")
	searchURL := flag.String("search-url", songscraper.DefaultSearchURL, "Results page URL")
	mode := flag.String("mode", scraper.ModeHTTP, "Fetch mode (http|browser)")
	timeout := flag.Duration("timeout", 15*time.Second, "Per-page fetch timeout")
	concurrency := flag.Int("concurrency", 4, "Pages fetched at once")
	output := flag.String("output", "probeReports.json", "Where to write the JSON reports")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, err := scraper.NewFetcher(*mode, *timeout, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	terms := []string{}
	for _, term := range strings.Split(*queries, ",") {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}

	outputFile, err := os.Create(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating output file:", err)
		os.Exit(1)
	}
	defer outputFile.Close()

	fmt.Printf("Probing %d queries...\n", len(terms))
	reports, err := jobs.ProbeExtractions(ctx, fetcher, *searchURL, terms, *concurrency, outputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	unhealthy := 0
	for _, report := range reports {
		fmt.Printf("\nQuery: %s\n", report.Query)
		fmt.Printf("  Outcome: %s\n", report.Outcome)
		fmt.Printf("  Items: %d, Kept: %d\n", report.Items, report.Kept)
		for reason, count := range report.Skipped {
			fmt.Printf("  Skipped %s: %d\n", reason, count)
		}
		if report.Error != "" {
			fmt.Printf("  Error: %s\n", report.Error)
		}
		if !report.Healthy() {
			unhealthy++
		}
	}

	fmt.Printf("\n--- Overall Summary ---\n")
	fmt.Printf("Queries probed: %d\n", len(reports))
	fmt.Printf("Unhealthy: %d\n", unhealthy)
	fmt.Printf("Reports written to %s\n", *output)

	if unhealthy > 0 {
		outputFile.Close()
		os.Exit(1)
	}
}
