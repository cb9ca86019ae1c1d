package usecase

import "strings"

// defaultMaxKeywords caps how many search tokens are kept from one name.
const defaultMaxKeywords = 5

// stopWords are Spanish articles, prepositions and conjunctions that never
// help a catalog search.
var stopWords = map[string]bool{
	// Articles
	"el": true, "la": true, "los": true, "las": true,
	"un": true, "una": true, "unos": true, "unas": true,
	// Prepositions
	"de": true, "del": true, "al": true, "en": true, "con": true,
	"por": true, "para": true, "sin": true, "sobre": true, "entre": true,
	"desde": true, "hasta": true, "segun": true, "tras": true,
	// Conjunctions
	"y": true, "o": true, "u": true, "e": true, "ni": true, "que": true,
	"como": true, "pero": true,
}

// KeywordExtractor derives salient search tokens from a product name. It is
// the fallback search key when a full-name catalog search comes up empty or
// below threshold.
type KeywordExtractor struct {
	maxKeywords int
}

// NewKeywordExtractor creates a new keyword extractor
func NewKeywordExtractor(maxKeywords int) *KeywordExtractor {
	if maxKeywords <= 0 {
		maxKeywords = defaultMaxKeywords
	}
	return &KeywordExtractor{maxKeywords: maxKeywords}
}

// Keywords returns up to maxKeywords significant tokens from the name, in
// their original order. Stop words and tokens shorter than three runes are
// dropped.
func (e *KeywordExtractor) Keywords(name string) []string {
	var keywords []string
	for _, tok := range strings.Fields(Normalize(name)) {
		if len([]rune(tok)) < minTokenLength || stopWords[tok] {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == e.maxKeywords {
			break
		}
	}
	return keywords
}

// LongestKeyword returns the longest extracted keyword, the single token
// tried first as a fallback search. Earlier tokens win ties. Empty when the
// name yields no keywords.
func (e *KeywordExtractor) LongestKeyword(name string) string {
	longest := ""
	for _, kw := range e.Keywords(name) {
		if len([]rune(kw)) > len([]rune(longest)) {
			longest = kw
		}
	}
	return longest
}
