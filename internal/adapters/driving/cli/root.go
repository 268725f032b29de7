// Package cli implements the sifter command line interface with cobra.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sifter/internal/core/ports/driving"
	"github.com/custodia-labs/sifter/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Options carries the global flags to the bootstrap function.
type Options struct {
	// ConfigPath overrides the configuration file location.
	ConfigPath string

	// RecordsPath overrides the records.source setting.
	RecordsPath string

	// NoConfig runs on default settings held in memory. Changes are not saved.
	NoConfig bool
}

// Services are the driving ports the commands operate on.
type Services struct {
	Search    driving.SearchService
	Records   driving.RecordService
	Settings  driving.SettingsService
	Refresher driving.Refresher

	// Close releases the resources behind the services. Optional.
	Close func() error
}

// BootstrapFunc builds the services for the given options.
type BootstrapFunc func(opts Options) (*Services, error)

// SettingsFunc opens the settings alone, for commands that never load records.
type SettingsFunc func(opts Options) (driving.SettingsService, error)

var (
	searchService   driving.SearchService
	recordService   driving.RecordService
	settingsService driving.SettingsService
	refresher       driving.Refresher
	closeServices   func() error

	bootstrap    BootstrapFunc
	loadSettings SettingsFunc
	opts         Options
	verbose      bool
)

var errNoSearch = errors.New("search service not configured")

var rootCmd = &cobra.Command{
	Use:   "sifter",
	Short: "Fuzzy relevance search over a record collection",
	Long: `Sifter searches a collection of records with typo-tolerant matching.

Records are ranked by how many query words they match, whether the title
matches and how close the fuzzy matches are. Results are highlighted and
paginated.

Records are read from a JSON, YAML or TOML file, or from a SQLite database
(sqlite://path), configured with --records or the records.source setting.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline details to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.sifter/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&opts.RecordsPath, "records", "r", "", "record file or sqlite://path")
	rootCmd.PersistentFlags().BoolVar(&opts.NoConfig, "no-config", false, "ignore the config file and use default settings")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds the services before a
// command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetSettingsLoader registers the function that opens the settings for
// commands that skip the bootstrap.
func SetSettingsLoader(fn SettingsFunc) {
	loadSettings = fn
}

// SetServices installs ready-made services, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	recordService = s.Records
	settingsService = s.Settings
	refresher = s.Refresher
	closeServices = s.Close
}

// Execute runs the root command.
func Execute() error {
	defer shutdown()
	return rootCmd.Execute()
}

// setup enables logging and builds what the command needs, once.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	switch requirementOf(cmd) {
	case needsNothing:
		return nil
	case needsSettings:
		if settingsService != nil || loadSettings == nil {
			return nil
		}
		settings, err := loadSettings(opts)
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		settingsService = settings
		return nil
	}

	if searchService != nil || bootstrap == nil {
		return nil
	}
	services, err := bootstrap(opts)
	if err != nil {
		return fmt.Errorf("starting sifter: %w", err)
	}
	SetServices(services)
	return nil
}

type requirement int

const (
	needsServices requirement = iota
	needsSettings
	needsNothing
)

// requirementOf reports what cmd needs before it runs. Only commands that
// search or list records load them.
func requirementOf(cmd *cobra.Command) requirement {
	switch {
	case cmd == versionCmd:
		return needsNothing
	case cmd == paginateCmd, cmd == configCmd, cmd.Parent() == configCmd:
		return needsSettings
	}
	return needsServices
}

func shutdown() {
	if closeServices == nil {
		return
	}
	if err := closeServices(); err != nil {
		logger.Warn("closing services: %v", err)
	}
	closeServices = nil
}
