// Package cmd implements the todopush command-line interface: one-shot
// submission (add), the launcher event loop (serve), credential setup
// (auth), task-list discovery (lists) and documentation generation.
package cmd
