// Package titles canonicalizes noisy human-entered book titles and derives
// the token, keyword, and subject sets the similarity scorer compares.
//
// Normalize is the single source of truth for the canonical form; every
// comparison elsewhere in the repository happens on normalized titles.
package titles
