// Package api defines wire-format types and converters for the daemon's JSON
// endpoints. It translates registry models into transport-friendly DTOs so
// slavectl and other consumers never couple to internal types.
package api
