package domain

import "errors"

var (
	// ErrMissingExportFile marks a conversation folder without its descriptor
	// or message list. The folder stays unprocessed and is retried next run.
	ErrMissingExportFile = errors.New("export file missing")

	// ErrNoDatabase marks a read-only mode invoked before any aggregation run
	// has created the analysis database.
	ErrNoDatabase = errors.New("analysis database not found")
)
