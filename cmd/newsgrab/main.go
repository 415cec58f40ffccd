package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/newsgrab/newsgrab/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		site        string
		configPath  string
		urlFile     string
		outDir      string
		logCSV      string
		logPDF      string
		userAgent   string
		fetchTO     time.Duration
		downloadTO  time.Duration
		attempts    int
		cacheDir    string
		cacheMaxAge time.Duration
		cacheClear  bool
		numbering   string
		verbose     bool
	)

	flag.StringVar(&site, "site", os.Getenv("NEWSGRAB_SITE"), "Site profile: dailymail or guardian")
	flag.StringVar(&configPath, "config", os.Getenv("NEWSGRAB_CONFIG"), "Optional YAML config file")
	flag.StringVar(&urlFile, "input", "", "Path to URL list (default <site>_urls.txt)")
	flag.StringVar(&outDir, "out", "", "Directory for downloaded images (default <site>_images)")
	flag.StringVar(&logCSV, "log", "", "Path for the CSV run log (default <site>_log.csv)")
	flag.StringVar(&logPDF, "log.pdf", "", "Optional path for a PDF run summary")
	flag.StringVar(&userAgent, "ua", "", "Custom User-Agent for page and image requests")
	flag.DurationVar(&fetchTO, "timeout.fetch", 0, "Per-request timeout for page fetches (default 60s)")
	flag.DurationVar(&downloadTO, "timeout.download", 0, "Per-request timeout for image downloads (default 30s)")
	flag.IntVar(&attempts, "attempts", 0, "Fetch attempts including the first (default 2)")
	flag.StringVar(&cacheDir, "cache.dir", "", "Optional page cache directory")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cached pages before purge; 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear the page cache before the run")
	flag.StringVar(&numbering, "numbering", "", "Filename numbering policy: attempt or success (default per site)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		Site:            site,
		URLFile:         urlFile,
		OutDir:          outDir,
		LogCSV:          logCSV,
		LogPDF:          logPDF,
		UserAgent:       userAgent,
		FetchTimeout:    fetchTO,
		DownloadTimeout: downloadTO,
		MaxAttempts:     attempts,
		CacheDir:        cacheDir,
		CacheMaxAge:     cacheMaxAge,
		CacheClear:      cacheClear,
		Numbering:       numbering,
		Verbose:         verbose,
	}

	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(1)
		}
		cfg.ApplyFile(fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when there was nothing to process, 1 for
		// real failures (unreadable input, unwritable report).
		if errors.Is(err, app.ErrNoPages) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	return a.Run(context.Background())
}
