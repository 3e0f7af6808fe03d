// Package logging configures slog output for the slave daemon and CLI.
//
// It provides a console handler for terminals, a JSON handler for machine
// consumption, and a fanout that mirrors records into the leveled log files
// (slaved.INFO, slaved.WARN, slaved.ERROR) that the web UI's /log endpoints
// serve. Attr helper aliases keep call sites terse and make the component
// field convention explicit.
package logging
