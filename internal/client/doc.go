// Package client provides an HTTP client for the slave daemon's web UI
// endpoints, used by the control CLI.
package client
