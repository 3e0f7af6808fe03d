// Package registry persists the frameworks assigned to this slave.
//
// It is a small SQLite store (registry.db under the work directory) written
// by the executor layer as frameworks register and terminate, and read by the
// web UI's index and framework pages and by slavectl. The schema carries a
// version guard so an incompatible database fails loudly instead of half
// working.
package registry
