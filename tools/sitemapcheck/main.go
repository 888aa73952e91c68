package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fuongz/portfolio/internal/sitemapcheck"
	"github.com/fuongz/portfolio/internal/utils"
	flag "github.com/spf13/pflag"
)

func main() {
	sitemapURL := flag.StringP("url", "u", "http://localhost:8080/sitemap.xml", "sitemap to check")
	userAgent := flag.String("user-agent", "Portfolio Sitemap Checker v1.0", "user agent for requests")
	timeout := flag.Duration("timeout", 0, "per-request timeout (default 15s)")
	debug := flag.Bool("debug", false, "log every visited URL")
	flag.Parse()

	logger := utils.NewWriterLogger("sitemapcheck", os.Stderr, *debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checker := sitemapcheck.NewChecker(*userAgent, *timeout, logger)
	results, err := checker.Check(ctx, *sitemapURL)
	if err != nil {
		log.Fatalf("Error checking sitemap: %v", err)
	}

	failed := 0
	for _, r := range results {
		if r.OK() {
			fmt.Printf("OK   %d %s (%s)\n", r.Status, r.URL, r.Title)
			continue
		}
		failed++
		fmt.Printf("FAIL %d %s: %v\n", r.Status, r.URL, r.Err)
	}

	fmt.Printf("\n%d checked, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
