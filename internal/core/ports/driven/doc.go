// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FuzzyIndex: Approximate field matching over the record collection
//   - RecordSource: Supplies the record collection
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RecordStore: Writable record persistence. Without it, records cannot be imported.
//   - ChangeNotifier: Signals that the record source changed. Without it, only
//     the periodic refresh picks up new records.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
