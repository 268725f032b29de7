package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	configfile "github.com/custodia-labs/sifter/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sifter/internal/adapters/driven/index/approx"
	recordfile "github.com/custodia-labs/sifter/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/sifter/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sifter/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sifter/internal/adapters/driven/watch"
	"github.com/custodia-labs/sifter/internal/adapters/driving/cli"
	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
	"github.com/custodia-labs/sifter/internal/core/services"
	"github.com/custodia-labs/sifter/internal/logger"
)

// sqliteScheme prefixes record sources backed by a SQLite database.
const sqliteScheme = "sqlite://"

// bootstrap wires the driven adapters into the core services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	defer logger.Elapsed("bootstrap")()

	settingsService, err := openSettings(opts)
	if err != nil {
		return nil, err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	location := opts.RecordsPath
	if location == "" {
		location = settings.RecordSource
	}
	src, err := openSource(location)
	if err != nil {
		return nil, err
	}

	index := approx.New(settings.Search.Threshold)
	src.closers = append(src.closers, index.Close)

	engine, err := services.NewEngine(index, *settings)
	if err != nil {
		src.close()
		return nil, err
	}
	records, err := services.NewRecordService(src.source, engine)
	if err != nil {
		src.close()
		return nil, err
	}
	if err := records.Reload(context.Background()); err != nil {
		src.close()
		return nil, err
	}
	logger.Info("loaded %d records from %s", len(engine.Records()), src.name)

	return &cli.Services{
		Search:    engine,
		Records:   records,
		Settings:  settingsService,
		Refresher: services.NewRefresher(records, settings.Refresh.Interval, src.notifier),
		Close:     src.close,
	}, nil
}

// openSettings opens the settings without touching the record source.
func openSettings(opts cli.Options) (*services.SettingsService, error) {
	if opts.NoConfig {
		return services.NewSettingsService(memory.NewConfigStore()), nil
	}
	configStore, err := openConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return services.NewSettingsService(configStore), nil
}

func openConfig(path string) (driven.ConfigStore, error) {
	if path != "" {
		return configfile.OpenConfigFile(path)
	}
	return configfile.NewConfigStore("")
}

// recordSource is an opened source with its optional change notifier.
type recordSource struct {
	name     string
	source   driven.RecordSource
	notifier driven.ChangeNotifier
	closers  []func() error
}

func (s *recordSource) close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// openSource opens the record source named by location: a sqlite:// URL, a
// record file path, or nothing for an empty collection.
func openSource(location string) (*recordSource, error) {
	switch {
	case location == "":
		logger.Debug("no record source configured")
		store := memory.NewRecordStore([]domain.Record{})
		return &recordSource{name: "memory", source: store, closers: []func() error{store.Close}}, nil

	case strings.HasPrefix(location, sqliteScheme):
		path := strings.TrimPrefix(location, sqliteScheme)
		var (
			store *sqlite.Store
			err   error
		)
		if path == "" {
			store, err = sqlite.NewStore("")
		} else {
			store, err = sqlite.OpenStore(path)
		}
		if err != nil {
			return nil, fmt.Errorf("opening record database: %w", err)
		}
		logger.Debug("records from database %s", store.Path())
		return &recordSource{name: store.Path(), source: store, closers: []func() error{store.Close}}, nil
	}

	source, err := recordfile.NewSource(location)
	if err != nil {
		return nil, fmt.Errorf("opening record file: %w", err)
	}
	src := &recordSource{name: source.Path(), source: source}

	watcher, err := watch.NewFileWatcher(source.Path(), watch.DefaultDebounce)
	if err != nil {
		logger.Warn("not watching %s: %v", source.Path(), err)
		return src, nil
	}
	src.notifier = watcher
	src.closers = append(src.closers, watcher.Close)
	return src, nil
}
