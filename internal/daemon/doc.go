// Package daemon wires the slave's services together: the framework
// registry, the slave identity store, and the admin web UI. It enforces
// single-instance execution with a lock file and reports runtime status
// over the web UI's API surface.
package daemon
