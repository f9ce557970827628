package retrieval

import (
	"strings"

	"ai-medassist-be/internal/entity"
)

// Scorer assigns a relevance score to a document for a set of query tokens.
// The scoring policy is deliberately pluggable: the default substring
// heuristic both over-matches (substrings inside unrelated words) and
// under-matches (no stemming), and a replacement must not require touching
// the engine.
type Scorer interface {
	Score(tokens []string, doc *entity.Document) int
}

// SubstringScorer counts the distinct query tokens contained anywhere in
// the document content, case-insensitively. A document mentioning a token
// once scores the same as one mentioning it fifty times; only coverage of
// distinct tokens matters.
type SubstringScorer struct{}

func NewSubstringScorer() *SubstringScorer {
	return &SubstringScorer{}
}

func (s *SubstringScorer) Score(tokens []string, doc *entity.Document) int {
	content := strings.ToLower(doc.Content)
	score := 0
	for _, token := range tokens {
		if strings.Contains(content, strings.ToLower(token)) {
			score++
		}
	}
	return score
}
