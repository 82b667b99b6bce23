package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/goliatone/go-megamenu/pkg/cache"
)

// config is the resolved CLI configuration. Precedence: defaults, then the
// TOML file, then explicitly set flags.
type config struct {
	TermSet      string
	Locale       string
	Source       string
	CacheDB      string
	TTL          time.Duration
	DisableCache bool
	PurgeExpired bool
	Chrome       bool
	Interactive  bool
	Preset       string
	Output       string
	Serve        string
	LogLevel     string
	Theme        map[string]string
}

func defaultConfig() config {
	return config{
		Locale: "en-us",
		Source: ".",
		TTL:    cache.DefaultTTL,
		Chrome: true,
	}
}

// fileConfig mirrors the TOML document:
//
//	termset = "top-menu"
//	locale = "en-us"
//	source = "./terms"
//	chrome = true
//	preset = "preset.yaml"
//
//	[cache]
//	db = "megamenu.db"
//	ttl = "15m"
//	disabled = false
//
//	[log]
//	level = "debug"
//
//	[theme]
//	"megamenu.app" = "acme-app"
type fileConfig struct {
	TermSet string `toml:"termset"`
	Locale  string `toml:"locale"`
	Source  string `toml:"source"`
	Chrome  bool   `toml:"chrome"`
	Preset  string `toml:"preset"`
	Output  string `toml:"output"`
	Serve   string `toml:"serve"`
	Cache   struct {
		DB       string `toml:"db"`
		TTL      string `toml:"ttl"`
		Disabled bool   `toml:"disabled"`
	} `toml:"cache"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Theme map[string]string `toml:"theme"`
}

// applyFile overlays keys present in the TOML document onto cfg.
func applyFile(cfg *config, r io.Reader) error {
	var file fileConfig
	meta, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return fmt.Errorf("config: decode: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("termset") {
		cfg.TermSet = file.TermSet
	}
	if meta.IsDefined("locale") {
		cfg.Locale = file.Locale
	}
	if meta.IsDefined("source") {
		cfg.Source = file.Source
	}
	if meta.IsDefined("chrome") {
		cfg.Chrome = file.Chrome
	}
	if meta.IsDefined("preset") {
		cfg.Preset = file.Preset
	}
	if meta.IsDefined("output") {
		cfg.Output = file.Output
	}
	if meta.IsDefined("serve") {
		cfg.Serve = file.Serve
	}
	if meta.IsDefined("cache", "db") {
		cfg.CacheDB = file.Cache.DB
	}
	if meta.IsDefined("cache", "ttl") {
		ttl, err := time.ParseDuration(file.Cache.TTL)
		if err != nil {
			return fmt.Errorf("config: cache.ttl: %w", err)
		}
		cfg.TTL = ttl
	}
	if meta.IsDefined("cache", "disabled") {
		cfg.DisableCache = file.Cache.Disabled
	}
	if meta.IsDefined("log", "level") {
		cfg.LogLevel = file.Log.Level
	}
	if meta.IsDefined("theme") {
		cfg.Theme = file.Theme
	}
	return nil
}

// parseArgs resolves the configuration from args. openFile loads the -config
// document and is injected for tests.
func parseArgs(args []string, stderr io.Writer, openFile func(string) (io.ReadCloser, error)) (config, error) {
	defaults := defaultConfig()

	fs := flag.NewFlagSet("megamenu-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "TOML configuration file")
	termSet := fs.String("termset", defaults.TermSet, "term set ID to render")
	locale := fs.String("locale", defaults.Locale, "term label locale")
	source := fs.String("source", defaults.Source, "term-set directory or term store base URL")
	cacheDB := fs.String("cache-db", defaults.CacheDB, "sqlite file for the session cache (memory when empty)")
	ttl := fs.Duration("ttl", defaults.TTL, "cache entry lifetime")
	disableCache := fs.Bool("no-cache", defaults.DisableCache, "bypass the session cache")
	purge := fs.Bool("purge-expired", defaults.PurgeExpired, "drop expired sqlite cache entries before rendering")
	chrome := fs.Bool("chrome", defaults.Chrome, "add dropdown, sub-menu, and mobile toggle classes")
	interactive := fs.Bool("interactive", defaults.Interactive, "prompt for the term set when it is missing")
	preset := fs.String("preset", defaults.Preset, "JSON or YAML preset applied to the fetched terms")
	output := fs.String("output", defaults.Output, "output file (stdout if empty)")
	serve := fs.String("serve", defaults.Serve, "serve the page on this address instead of writing it")
	logLevel := fs.String("log-level", defaults.LogLevel, "log level (trace, debug, info, warn, error, off)")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := defaults
	if path := strings.TrimSpace(*configPath); path != "" {
		if openFile == nil {
			return config{}, errors.New("config: no file opener")
		}
		f, err := openFile(path)
		if err != nil {
			return config{}, fmt.Errorf("config: open %s: %w", path, err)
		}
		err = applyFile(&cfg, f)
		_ = f.Close()
		if err != nil {
			return config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "termset":
			cfg.TermSet = *termSet
		case "locale":
			cfg.Locale = *locale
		case "source":
			cfg.Source = *source
		case "cache-db":
			cfg.CacheDB = *cacheDB
		case "ttl":
			cfg.TTL = *ttl
		case "no-cache":
			cfg.DisableCache = *disableCache
		case "purge-expired":
			cfg.PurgeExpired = *purge
		case "chrome":
			cfg.Chrome = *chrome
		case "interactive":
			cfg.Interactive = *interactive
		case "preset":
			cfg.Preset = *preset
		case "output":
			cfg.Output = *output
		case "serve":
			cfg.Serve = *serve
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	cfg.TermSet = strings.TrimSpace(cfg.TermSet)
	cfg.Locale = strings.TrimSpace(cfg.Locale)
	cfg.Source = strings.TrimSpace(cfg.Source)
	if cfg.Source == "" {
		return config{}, errors.New("config: source is required")
	}
	if cfg.TTL <= 0 {
		return config{}, fmt.Errorf("config: ttl must be positive, got %s", cfg.TTL)
	}
	if cfg.Output != "" && cfg.Serve != "" {
		return config{}, errors.New("config: -output and -serve are mutually exclusive")
	}
	return cfg, nil
}

// remoteSource reports whether the source names a term store URL rather than
// a directory.
func (c config) remoteSource() bool {
	return strings.HasPrefix(c.Source, "http://") || strings.HasPrefix(c.Source, "https://")
}
