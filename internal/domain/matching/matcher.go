// Package matching implements the layered similarity heuristics used to
// look up stored questions. Stages trade precision for recall: exact match
// guarantees correctness, the fuzzy/keyword/substring stages accept false
// positives to cover paraphrased queries.
package matching

import (
	"regexp"
	"strings"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
	"github.com/0xcro3dile/mohur-go/internal/domain/ports"
)

const (
	// FuzzyThreshold is the minimum sequence ratio for a fuzzy hit.
	FuzzyThreshold = 0.7

	// KeywordThreshold is the minimum token overlap for a keyword hit.
	// The comparison is strict (score must exceed it).
	KeywordThreshold = 0.3
)

// Matcher evaluates an ordered list of strategies until one succeeds.
// The priority order is explicit configuration, not embedded control flow.
type Matcher struct {
	strategies []ports.MatchStrategy
}

// NewMatcher creates a matcher with the given strategies in priority order.
// With no arguments it uses the default chain:
// exact, fuzzy, keyword, substring.
func NewMatcher(strategies ...ports.MatchStrategy) *Matcher {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Matcher{strategies: strategies}
}

// DefaultStrategies returns the standard priority chain.
func DefaultStrategies() []ports.MatchStrategy {
	return []ports.MatchStrategy{
		Exact{},
		Fuzzy{Threshold: FuzzyThreshold},
		Keyword{Threshold: KeywordThreshold},
		Substring{},
	}
}

// Match runs the strategies in order over the entries. Later stages never
// run once an earlier stage matches. The query must already be normalized.
func (m *Matcher) Match(query string, entries []entities.KnowledgeEntry) (entities.MatchResult, bool) {
	for _, st := range m.strategies {
		if res, ok := st.Match(query, entries); ok {
			return res, true
		}
	}
	return entities.MatchResult{Method: entities.MatchNone}, false
}

// Exact matches when the query equals a stored key verbatim.
type Exact struct{}

func (Exact) Method() entities.MatchMethod { return entities.MatchExact }

func (Exact) Match(query string, entries []entities.KnowledgeEntry) (entities.MatchResult, bool) {
	for _, e := range entries {
		if e.Question == query {
			return entities.MatchResult{
				Key:    e.Question,
				Answer: e.Answer,
				Method: entities.MatchExact,
				Score:  1,
			}, true
		}
	}
	return entities.MatchResult{}, false
}

// Fuzzy matches on sequence similarity ratio. The highest-scoring key wins
// if its ratio reaches Threshold; among equal scores the key seen first in
// enumeration order is kept.
type Fuzzy struct {
	Threshold float64
}

func (Fuzzy) Method() entities.MatchMethod { return entities.MatchFuzzy }

func (f Fuzzy) Match(query string, entries []entities.KnowledgeEntry) (entities.MatchResult, bool) {
	best := entities.MatchResult{Method: entities.MatchFuzzy}
	found := false
	for _, e := range entries {
		score := Ratio(query, e.Question)
		if score > best.Score {
			best.Key = e.Question
			best.Answer = e.Answer
			best.Score = score
			found = true
		}
	}
	if !found || best.Score < f.Threshold {
		return entities.MatchResult{}, false
	}
	return best, true
}

// Keyword matches on Jaccard overlap of word token sets. The score must
// strictly exceed Threshold and the intersection must be non-empty.
type Keyword struct {
	Threshold float64
}

func (Keyword) Method() entities.MatchMethod { return entities.MatchKeyword }

func (k Keyword) Match(query string, entries []entities.KnowledgeEntry) (entities.MatchResult, bool) {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return entities.MatchResult{}, false
	}

	best := entities.MatchResult{Method: entities.MatchKeyword}
	found := false
	for _, e := range entries {
		score, common := overlap(queryTokens, tokenize(e.Question))
		if common == 0 || score <= k.Threshold {
			continue
		}
		// Strictly greater replaces, so ties keep the earlier-seen best.
		if score > best.Score {
			best.Key = e.Question
			best.Answer = e.Answer
			best.Score = score
			found = true
		}
	}
	return best, found
}

// Substring matches the first stored key that appears as a substring of
// the query.
type Substring struct{}

func (Substring) Method() entities.MatchMethod { return entities.MatchSubstring }

func (Substring) Match(query string, entries []entities.KnowledgeEntry) (entities.MatchResult, bool) {
	for _, e := range entries {
		if e.Question != "" && strings.Contains(query, e.Question) {
			return entities.MatchResult{
				Key:    e.Question,
				Answer: e.Answer,
				Method: entities.MatchSubstring,
				Score:  1,
			}, true
		}
	}
	return entities.MatchResult{}, false
}

// A word is a maximal run of alphanumeric/underscore characters.
var wordRe = regexp.MustCompile(`\w+`)

func tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		tokens[w] = struct{}{}
	}
	return tokens
}

// overlap computes |intersection| / |union| and the intersection size.
func overlap(a, b map[string]struct{}) (float64, int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0
	}
	common := 0
	for t := range a {
		if _, ok := b[t]; ok {
			common++
		}
	}
	union := len(a) + len(b) - common
	return float64(common) / float64(union), common
}
