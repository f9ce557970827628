package retrieval

import (
	"sort"
	"strings"
	"unicode/utf8"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/internal/entity"
)

// ScoredDocument pairs a document with its relevance for one query. Results
// are produced fresh per query and never cached.
type ScoredDocument struct {
	Document  *entity.Document
	Relevance int
}

// Engine ranks a scanned corpus against a query. It is a pure function over
// its inputs: no locking, no state between calls.
type Engine struct {
	scorer Scorer
}

func NewEngine(scorer Scorer) *Engine {
	return &Engine{scorer: scorer}
}

// Tokenize splits a query on whitespace and drops tokens at or below the
// short-token threshold; tokens that short carry no discriminative signal
// and would over-broaden substring matching. Length is counted in runes so
// multibyte scripts filter the same as ASCII. Tokens are deduplicated
// case-insensitively: relevance counts distinct tokens, so a repeated token
// must not score twice.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= constant.ShortTokenThreshold {
			continue
		}
		key := strings.ToLower(f)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// Retrieve scores every document against the query and returns the top k by
// relevance, recency breaking ties. Two degraded paths are defined rather
// than errors: an empty corpus yields an empty result, and a query with no
// surviving tokens (image-only turns, punctuation) yields the most recent
// documents at relevance 0.
func (e *Engine) Retrieve(query string, docs []*entity.Document, k int) []ScoredDocument {
	if k <= 0 {
		k = constant.DefaultRetrievalK
	}
	if len(docs) == 0 {
		return []ScoredDocument{}
	}

	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return e.recencyFallback(docs)
	}

	scored := make([]ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		if score := e.scorer.Score(tokens, doc); score > 0 {
			scored = append(scored, ScoredDocument{Document: doc, Relevance: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Relevance != scored[j].Relevance {
			return scored[i].Relevance > scored[j].Relevance
		}
		if !scored[i].Document.CreatedAt.Equal(scored[j].Document.CreatedAt) {
			return scored[i].Document.CreatedAt.After(scored[j].Document.CreatedAt)
		}
		return scored[i].Document.Id > scored[j].Document.Id
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// recencyFallback returns the most recently created documents with zero
// relevance, so an image-only or all-short-token turn still gets context.
func (e *Engine) recencyFallback(docs []*entity.Document) []ScoredDocument {
	byRecency := make([]*entity.Document, len(docs))
	copy(byRecency, docs)
	sort.SliceStable(byRecency, func(i, j int) bool {
		if !byRecency[i].CreatedAt.Equal(byRecency[j].CreatedAt) {
			return byRecency[i].CreatedAt.After(byRecency[j].CreatedAt)
		}
		return byRecency[i].Id > byRecency[j].Id
	})

	n := constant.RecencyFallbackK
	if len(byRecency) < n {
		n = len(byRecency)
	}

	result := make([]ScoredDocument, 0, n)
	for _, doc := range byRecency[:n] {
		result = append(result, ScoredDocument{Document: doc, Relevance: 0})
	}
	return result
}
