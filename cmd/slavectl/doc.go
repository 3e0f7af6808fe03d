// Package main hosts the slavectl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the slave daemon's web UI: status and framework listings,
// slave and framework log tailing, and configuration scaffolding. It
// centralizes configuration resolution and daemon address discovery so
// subcommands stay small.
package main
