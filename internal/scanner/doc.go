// Package scanner classifies media files by extension and filename pattern,
// extracts show/season/episode tokens, and normalizes titles for provider
// lookups and shelf sorting.
package scanner
