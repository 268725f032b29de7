// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - Engine: ranks records against a query and decorates the hits
//   - RecordService: keeps the engine in step with the record source
//   - Refresher: rebuilds the index while the source is still loading
//   - SettingsService: reads and writes settings through the config store
//
// Services are pure Go with no CGO.
package services
