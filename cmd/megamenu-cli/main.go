package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	megamenu "github.com/goliatone/go-megamenu"
	"github.com/goliatone/go-megamenu/internal/logging"
	"github.com/goliatone/go-megamenu/internal/prompt"
	"github.com/goliatone/go-megamenu/pkg/cache"
	"github.com/goliatone/go-megamenu/pkg/cache/sqlite"
	"github.com/goliatone/go-megamenu/pkg/orchestrator"
	"github.com/goliatone/go-megamenu/pkg/placeholder"
	"github.com/goliatone/go-megamenu/pkg/placeholder/pagehost"
	"github.com/goliatone/go-megamenu/pkg/renderers/menu"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// themeName labels the manifest built from the [theme] config table.
const themeName = "config"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "megamenu-cli: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseArgs(args, stderr, func(path string) (io.ReadCloser, error) {
		return os.Open(path)
	})
	if err != nil {
		return err
	}

	logCfg := logging.FromEnv(logging.ProfileRuntime)
	logCfg.Out = stderr
	if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
		logCfg.Level = level
	}
	logger := logging.New("megamenu-cli", logCfg)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	if cfg.TermSet == "" && cfg.Interactive {
		var choices []string
		if !cfg.remoteSource() {
			choices, err = prompt.TermSetNames(os.DirFS(cfg.Source))
			if err != nil {
				return fmt.Errorf("list term sets: %w", err)
			}
		}
		cfg.TermSet, err = prompt.AskTermSet(ctx, prompt.NewSurveyDriver(), choices)
		if err != nil {
			return err
		}
	}
	if cfg.TermSet == "" {
		logger.Warn().Msg("no term set configured; rendering an empty menu")
	}

	sessionCache, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		logMetrics(context.Background(), reader, logger)
		_ = provider.Shutdown(context.Background())
	}()

	rendererOptions := []menu.Option{menu.WithChromeClasses(cfg.Chrome)}
	if len(cfg.Theme) > 0 {
		manifest := &theme.Manifest{Name: themeName, Version: "0.0.0", Tokens: cfg.Theme}
		rendererOptions = append(rendererOptions, menu.WithThemeSelector(menu.NewManifestSelector(manifest), themeName, ""))
	}

	options := []orchestrator.Option{
		orchestrator.WithStore(store),
		orchestrator.WithCache(sessionCache),
		orchestrator.WithTTL(cfg.TTL),
		orchestrator.WithCacheDisabled(cfg.DisableCache),
		orchestrator.WithMeter(provider.Meter("megamenu-cli")),
		orchestrator.WithLogger(logger),
		orchestrator.WithRendererOptions(rendererOptions...),
		orchestrator.WithTransformers(orchestrator.ExcludeHidden()),
	}
	if cfg.Preset != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(cfg.Preset)), filepath.Base(cfg.Preset))
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithTransformers(preset))
	}
	orch := orchestrator.New(options...)

	page := pagehost.New(placeholder.DefaultSlot)
	controller, err := orch.Attach(page, placeholder.Config{TermSetID: cfg.TermSet, Locale: cfg.Locale})
	if err != nil {
		return err
	}
	defer controller.Stop()

	if err := controller.Start(ctx); err != nil {
		if cfg.Serve == "" {
			return err
		}
		logger.Error().Err(err).Msg("initial render failed; serving the page shell")
	}

	if cfg.Serve != "" {
		srv := newServer(cfg, orch, page, logger)
		return srv.listen(ctx, cfg.Serve)
	}

	document, err := renderDocument(page, true)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		_, err := io.WriteString(stdout, document+"\n")
		return err
	}
	if err := os.WriteFile(cfg.Output, []byte(document+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info().Str("path", cfg.Output).Msg("menu written")
	return nil
}

func openStore(cfg config) (taxonomy.Store, error) {
	if cfg.remoteSource() {
		return megamenu.NewHTTPStore(cfg.Source)
	}
	info, err := os.Stat(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open source: %s is not a directory", cfg.Source)
	}
	return megamenu.NewFileStore(os.DirFS(cfg.Source)), nil
}

func openCache(ctx context.Context, cfg config, logger zerolog.Logger) (cache.Store, func(), error) {
	if cfg.CacheDB == "" {
		return cache.NewMemory(), func() {}, nil
	}

	store, err := sqlite.Open(ctx, cfg.CacheDB, sqlite.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("close cache")
		}
	}

	if cfg.PurgeExpired {
		purged, err := store.Purge(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			closeFn()
			return nil, nil, err
		}
		logger.Debug().Int64("entries", purged).Msg("purged expired cache entries")
	}
	return store, closeFn, nil
}
