// Command sifter is a typo-tolerant relevance search over a record collection.
package main

import (
	"os"

	"github.com/custodia-labs/sifter/internal/adapters/driving/cli"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	cli.SetSettingsLoader(func(opts cli.Options) (driving.SettingsService, error) {
		return openSettings(opts)
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
