package match

// stopWords are dropped from queries before matching. Excerpts still use
// them as low-priority anchors.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "of": {}, "in": {}, "at": {},
	"on": {}, "to": {}, "for": {}, "with": {}, "and": {}, "or": {},
	"does": {}, "how": {}, "what": {}, "can": {}, "do": {}, "you": {},
	"your": {}, "are": {}, "am": {}, "could": {},
}

// IsStopWord reports whether the lowercase word is a stop word.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
