// Package database provides the optional SQLite run ledger.
//
// The ledger keeps one row per importer invocation and one row per source
// entry processed in it, so failed entries can be found and retried by hand
// after the console output is gone. Nothing in the importer reads the ledger
// back to change its behavior.
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── runs/            # Run and entry outcome recording
//
// # Usage
//
//	db, err := database.NewDatabase("./j2d.db", logger)
//	recorder := runs.NewRecorder(db.DB, "Journey", "/path/to/export")
//	runID, err := recorder.StartRun(42)
//
// The ledger is disabled unless database_path is configured.
package database
