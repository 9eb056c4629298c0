// Package launcher implements the stdio event loop behind the serve
// command. A launcher frontend writes one JSON event per line on
// stdin; query events are answered with preview items and select
// events forward the typed title to the configured backend.
package launcher
