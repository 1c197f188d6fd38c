// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// KnowledgeEntry is one curated question/answer pair.
// The question is stored normalized (case-folded, whitespace-trimmed).
type KnowledgeEntry struct {
	Question string
	Answer   string
}

// MatchMethod identifies which heuristic stage produced a match.
type MatchMethod string

const (
	MatchExact     MatchMethod = "exact"
	MatchFuzzy     MatchMethod = "fuzzy"
	MatchKeyword   MatchMethod = "keyword"
	MatchSubstring MatchMethod = "substring"
	MatchNone      MatchMethod = "none"
)

// MatchResult is the outcome of running the similarity matcher over the
// stored keys. Only the answer crosses the boundary to the resolver; the
// method and score are kept for diagnostics.
type MatchResult struct {
	Key    string
	Answer string
	Method MatchMethod
	Score  float64
}

// GenerationOutcome classifies a fallback generation attempt.
// The resolver branches on this value; the generation client never
// propagates raw provider errors.
type GenerationOutcome string

const (
	GenerationOK          GenerationOutcome = "ok"
	GenerationUnavailable GenerationOutcome = "unavailable"
	GenerationFailed      GenerationOutcome = "failed"
)

// Generation is the explicit result of a fallback generation call.
type Generation struct {
	Text    string
	Outcome GenerationOutcome
	Reason  string // diagnostic only, never shown to the user
}

// AnswerSource identifies which pipeline stage answered a question.
type AnswerSource string

const (
	SourceKnowledgeBase AnswerSource = "kb"
	SourceSystemRule    AnswerSource = "rule"
	SourceLLM           AnswerSource = "llm"
	SourceNone          AnswerSource = "none"
)

// Resolution is the final outcome of resolving one question.
type Resolution struct {
	Answer string
	Source AnswerSource
	Method MatchMethod // set when Source is kb
}
