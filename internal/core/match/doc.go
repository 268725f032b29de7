// Package match holds the text primitives of the search pipeline.
//
// It tokenises queries, measures edit distance, locates highlight spans
// and cuts excerpts. Every function is pure and total: any string input,
// including the empty string, produces a result.
//
// # Word Tokens
//
// Text is split into runs of Unicode letters, digits and underscores.
// All offsets are rune offsets into the original text, and case folding
// is applied rune by rune so folded and original offsets stay aligned.
//
// # Match Tiers
//
// A text token qualifies against a query term in one of three ways, tried
// in order:
//
//   - exact: the term is shorter than 5 runes and equals the token
//   - contains: the term is longer than 3 runes and occurs in the token
//   - fuzzy: the term has at least 5 runes and some substring of the token
//     is within the edit tolerance of it
package match
