package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/newsgrab/newsgrab/internal/cache"
	"github.com/newsgrab/newsgrab/internal/download"
	"github.com/newsgrab/newsgrab/internal/extract"
	"github.com/newsgrab/newsgrab/internal/fetch"
	"github.com/newsgrab/newsgrab/internal/profile"
	"github.com/newsgrab/newsgrab/internal/report"
	"github.com/newsgrab/newsgrab/internal/source"
)

// ErrNoPages is returned when the URL list yields zero pages for the chosen
// site. Per the exit code policy this is the only non-zero exit condition.
var ErrNoPages = fmt.Errorf("no page URLs to process")

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome Safari"

// App wires the pipeline together: URL source -> fetcher -> extraction
// engine -> downloader -> report. Processing is sequential per page; the
// filename counter is the only state shared across pages and is owned here.
type App struct {
	cfg       Config
	profile   *profile.Profile
	fetcher   *fetch.Client
	dl        *download.Downloader
	numbering profile.NumberingPolicy

	// counter is the global sequential image number, starting at 1. In a
	// concurrent redesign it must stay a single owned counter behind a
	// mutex or atomic, never duplicated per worker.
	counter int
}

// New validates the configuration, resolves the site profile, and prepares
// the collaborators.
func New(cfg Config) (*App, error) {
	p, err := profile.ByName(cfg.Site)
	if err != nil {
		return nil, err
	}

	if cfg.URLFile == "" {
		cfg.URLFile = p.Name + "_urls.txt"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = p.Name + "_images"
	}
	if cfg.LogCSV == "" {
		cfg.LogCSV = p.Name + "_log.csv"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 60 * time.Second
	}
	if cfg.DownloadTimeout == 0 {
		cfg.DownloadTimeout = 30 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 2
	}

	numbering := p.Numbering
	switch cfg.Numbering {
	case "":
	case string(profile.NumberOnAttempt):
		numbering = profile.NumberOnAttempt
	case string(profile.NumberOnSuccess):
		numbering = profile.NumberOnSuccess
	default:
		return nil, fmt.Errorf("unknown numbering policy: %q", cfg.Numbering)
	}

	a := &App{
		cfg:     cfg,
		profile: p,
		fetcher: &fetch.Client{
			UserAgent:         cfg.UserAgent,
			MaxAttempts:       cfg.MaxAttempts,
			PerRequestTimeout: cfg.FetchTimeout,
		},
		dl: &download.Downloader{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.DownloadTimeout,
		},
		numbering: numbering,
		counter:   1,
	}

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			_ = cache.ClearDir(cfg.CacheDir)
		}
		if cfg.CacheMaxAge > 0 {
			_, _ = cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
		}
		a.fetcher.Cache = &cache.PageCache{Dir: cfg.CacheDir}
	}

	return a, nil
}

// Run processes every page URL in order and always writes the report, even
// when every page failed. Per-page and per-image failures are logged and
// recovered locally; nothing here is fatal to the run.
func (a *App) Run(ctx context.Context) error {
	urls, err := source.Load(a.cfg.URLFile, a.profile.URLFilter)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return ErrNoPages
	}
	if err := os.MkdirAll(a.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var rep report.Writer
	for _, pageURL := range urls {
		log.Info().Str("url", pageURL).Msg("fetching page")
		doc, err := a.fetcher.GetHTML(ctx, pageURL)
		if err != nil {
			log.Warn().Err(err).Str("url", pageURL).Msg("fetch failed; recording zero images")
			rep.Append(pageURL, nil)
			continue
		}

		imgs := extract.Images(doc, pageURL, a.profile)
		log.Info().Int("count", len(imgs)).Str("url", pageURL).Msg("images found in scope")

		saved := a.downloadAll(ctx, imgs)
		log.Info().Int("saved", len(saved)).Str("url", pageURL).Msg("page done")
		rep.Append(pageURL, saved)
	}

	if err := rep.WriteCSV(a.cfg.LogCSV); err != nil {
		return err
	}
	log.Info().Str("out", a.cfg.LogCSV).Msg("wrote run log")
	if a.cfg.LogPDF != "" {
		if err := rep.WritePDF(a.cfg.LogPDF, "newsgrab run: "+a.profile.Name); err != nil {
			log.Warn().Err(err).Msg("pdf summary failed")
		} else {
			log.Info().Str("out", a.cfg.LogPDF).Msg("wrote pdf summary")
		}
	}
	return nil
}

// downloadAll saves each image sequentially, advancing the global counter
// per the numbering policy. A failed download never aborts the page.
func (a *App) downloadAll(ctx context.Context, imgs []string) []string {
	var saved []string
	for _, imgURL := range imgs {
		name := download.FileName(a.profile.FilePrefix, a.counter, imgURL)
		if a.numbering == profile.NumberOnAttempt {
			// The number is consumed whether or not the save succeeds.
			a.counter++
		}
		dest := filepath.Join(a.cfg.OutDir, name)
		if _, err := a.dl.Save(ctx, imgURL, dest); err != nil {
			log.Warn().Err(err).Str("url", imgURL).Msg("download failed; skipping image")
			continue
		}
		if a.numbering == profile.NumberOnSuccess {
			a.counter++
		}
		log.Debug().Str("file", name).Str("url", imgURL).Msg("saved image")
		saved = append(saved, name)
	}
	return saved
}
