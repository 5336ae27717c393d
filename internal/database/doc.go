// Package database provides the key/value slot storage used by fieldlog.
//
// The package defines the [Store] interface, a flat map of string keys to
// opaque byte values. Two consumers sit on top of it: the local document
// cache (one key) and the relay (one key per hosted document).
//
// # Backends
//
// The backend is selected at runtime with [Open]:
//   - [BackendBolt] (default): a single bbolt file
//   - [BackendSQLite]: a SQLite file through the pure Go modernc driver
//   - [BackendMemory]: process memory only, nothing survives a restart
//
//	db, err := database.Open(database.BackendBolt, "/path/fieldlog.bolt")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
// Missing keys are reported with [ErrNotFound].
package database
