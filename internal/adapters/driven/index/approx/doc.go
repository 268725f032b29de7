// Package approx implements driven.FuzzyIndex on an in-memory bleve index.
//
// # Matching
//
// Each record becomes a bleve document with one text field per indexed
// record field, analysed by a Unicode tokenizer and lower-casing. A pattern
// is analysed the same way, and every pattern term must match some field,
// either by a fuzzy term query allowing threshold × len(term) edits (at most
// two) or by a wildcard query for indexed terms containing it. Field weights
// become query boosts.
//
// # Scoring
//
// bleve's relevance score is unbounded, so the adapter scores hits itself
// from the terms bleve reports as matched in each field. A pattern term
// contained in a matched term scores 0, otherwise its edit distance divided
// by its length. The field score is the mean over pattern terms, an
// unmatched term counting 1. A field equal to the pattern scores 0 and any
// other match at least 0.001. Fields scoring above the threshold do not match.
//
// The record score multiplies, over matching fields,
//
//	score ^ (weight / totalWeight × 1/√tokens)
//
// where tokens counts the space-separated runs of the field value and the
// norm is rounded to three decimals. Lower is better.
package approx
