// Package sanitize cleans user-typed todo titles before they are sent
// to a remote API: whitespace trimming, control character removal, and
// rune-based length truncation.
package sanitize
