package app

import "time"

// Config holds runtime configuration for one run.
type Config struct {
	// Site selects the built-in profile ("dailymail" or "guardian").
	Site string

	// URLFile is the input URL list. Empty means <site>_urls.txt.
	URLFile string
	// OutDir receives downloaded images. Empty means <site>_images.
	OutDir string
	// LogCSV is the run log path. Empty means <site>_log.csv.
	LogCSV string
	// LogPDF, when set, additionally writes a PDF summary of the run.
	LogPDF string

	// HTTP behavior
	UserAgent       string
	FetchTimeout    time.Duration
	DownloadTimeout time.Duration
	MaxAttempts     int

	// Page cache
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool

	// Numbering overrides the profile's filename numbering policy when set
	// to "attempt" or "success".
	Numbering string

	Verbose bool
}
