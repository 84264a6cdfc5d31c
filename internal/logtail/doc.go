// Package logtail reads and parses the storefront's own log file for the
// activity view.
//
// # Reading Log Files
//
// Read extracts the last N lines with a ring buffer of size N, so memory is
// O(N) regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// A missing file yields nil, nil; the log may simply not exist yet.
//
// # Parsing
//
// The application logs through slog.TextHandler, one record per line:
//
//	time=2025-10-08T21:01:05.000Z level=WARN msg="remote create item failed" error="..."
//
// Parse splits such a line into time, level, message and the remaining
// attributes, unquoting Go-quoted values. Anything else (a panic trace, a
// line from an older format) is returned unparsed with the text as the
// message, never dropped.
//
// Filter keeps entries at or above a level, which is how the activity view
// hides debug chatter by default.
//
// # Design
//
// Pure functions, no file watching. The UI re-reads on its own refresh tick.
package logtail
