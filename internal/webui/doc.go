// Package webui serves the slave's administrative HTTP surface.
//
// It renders the index and per-framework HTML pages, serves static assets,
// and exposes the slave and framework log files whole or tailed. Framework
// log endpoints are gated on master registration: an unregistered slave
// answers 403 without ever touching the filesystem. A small /api surface
// feeds slavectl with JSON status and framework listings.
//
// Pages go through an explicit template cache; dev mode clears it per
// request so on-disk template edits are visible immediately.
package webui
