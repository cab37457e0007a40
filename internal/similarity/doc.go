// Package similarity scores the likeness of two book titles in [0,1] using
// several independent signals over normalized forms: shared curated subjects,
// shared distinctive keywords, whole-word overlap, and substring containment.
//
// The weighted-maximum combination deliberately avoids edit distance on the
// primary search path: titles that differ mainly in noise words (edition
// numbers, subtitles) would fool it. A classic Levenshtein similarity is kept
// as EditSimilarity for "same string with typos" checks over deduplicated
// candidates.
package similarity
