// Package router dispatches HTTP requests over typed URL patterns.
//
// Patterns are an ordered list of path segments compiled once at startup:
// literals, numeric ids, uppercase log levels, lowercase log types, and a
// greedy rest segment for static filenames that may contain slashes. The
// first structurally matching route wins, handlers return errors instead of
// writing failure responses themselves, and the dispatcher owns the 404/405/
// 500 taxonomy so pages and log endpoints stay free of response plumbing.
package router
