package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileConfig_AppliesOnlyUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `site: guardian
input: custom_urls.txt
outDir: pics
http:
  ua: newsgrab-file/1.0
  fetchTimeout: 45s
  attempts: 3
cache:
  dir: .page-cache
  maxAge: 24h
numbering: attempt
verbose: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// A flag-provided site must win over the file.
	cfg := Config{Site: "dailymail"}
	cfg.ApplyFile(fc)

	if cfg.Site != "dailymail" {
		t.Fatalf("flag value must win, got site %q", cfg.Site)
	}
	if cfg.URLFile != "custom_urls.txt" || cfg.OutDir != "pics" {
		t.Fatalf("file values must fill unset fields: %+v", cfg)
	}
	if cfg.UserAgent != "newsgrab-file/1.0" || cfg.FetchTimeout != 45*time.Second || cfg.MaxAttempts != 3 {
		t.Fatalf("http section not applied: %+v", cfg)
	}
	if cfg.CacheDir != ".page-cache" || cfg.CacheMaxAge != 24*time.Hour {
		t.Fatalf("cache section not applied: %+v", cfg)
	}
	if cfg.Numbering != "attempt" || !cfg.Verbose {
		t.Fatalf("numbering/verbose not applied: %+v", cfg)
	}
}

func TestLoadFileConfig_MissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
