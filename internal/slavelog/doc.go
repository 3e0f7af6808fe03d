// Package slavelog computes log file locations and tails them.
//
// Slave logs live at <log_dir>/slaved.<LEVEL>; framework logs live at
// <work_dir>/slave-<id>/framework-<id>/<type>. Path computation is pure and
// never touches the filesystem, and framework paths refuse to resolve while
// the slave is unregistered. Tail reads the last N lines of a file with a
// bounded backward scan instead of shelling out to tail(1), so missing files
// surface as real errors rather than captured diagnostics.
package slavelog
