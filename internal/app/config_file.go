package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// duration lets YAML carry values like "45s" or "24h"; yaml.v3 has no
// native time.Duration support.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = duration(parsed)
	return nil
}

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally to flags.
type FileConfig struct {
	Site   string `yaml:"site"`
	Input  string `yaml:"input"`
	OutDir string `yaml:"outDir"`
	Log    string `yaml:"log"`
	PDF    string `yaml:"pdf"`

	HTTP struct {
		UserAgent       string   `yaml:"ua"`
		FetchTimeout    duration `yaml:"fetchTimeout"`
		DownloadTimeout duration `yaml:"downloadTimeout"`
		Attempts        int      `yaml:"attempts"`
	} `yaml:"http"`

	Cache struct {
		Dir    string   `yaml:"dir"`
		MaxAge duration `yaml:"maxAge"`
		Clear  bool     `yaml:"clear"`
	} `yaml:"cache"`

	Numbering string `yaml:"numbering"`
	Verbose   bool   `yaml:"verbose"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// ApplyFile fills in any Config field left at its zero value from the file.
// Flags therefore always win over the file.
func (c *Config) ApplyFile(fc FileConfig) {
	if c.Site == "" {
		c.Site = fc.Site
	}
	if c.URLFile == "" {
		c.URLFile = fc.Input
	}
	if c.OutDir == "" {
		c.OutDir = fc.OutDir
	}
	if c.LogCSV == "" {
		c.LogCSV = fc.Log
	}
	if c.LogPDF == "" {
		c.LogPDF = fc.PDF
	}
	if c.UserAgent == "" {
		c.UserAgent = fc.HTTP.UserAgent
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = time.Duration(fc.HTTP.FetchTimeout)
	}
	if c.DownloadTimeout == 0 {
		c.DownloadTimeout = time.Duration(fc.HTTP.DownloadTimeout)
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = fc.HTTP.Attempts
	}
	if c.CacheDir == "" {
		c.CacheDir = fc.Cache.Dir
	}
	if c.CacheMaxAge == 0 {
		c.CacheMaxAge = time.Duration(fc.Cache.MaxAge)
	}
	if !c.CacheClear {
		c.CacheClear = fc.Cache.Clear
	}
	if c.Numbering == "" {
		c.Numbering = fc.Numbering
	}
	if !c.Verbose {
		c.Verbose = fc.Verbose
	}
}
