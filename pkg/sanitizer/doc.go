// Package sanitizer normalizes free-text customer fields before they are
// validated or persisted. Sanitizing never rejects input; it only trims,
// collapses, and canonicalizes so that lookups match what was stored.
package sanitizer
