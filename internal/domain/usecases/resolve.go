// Package usecases - resolve.go orchestrates the answer-resolution pipeline:
// knowledge base lookup, built-in rules, then LLM fallback in fixed priority
// order, short-circuiting at the first success.
package usecases

import (
	"context"
	"log"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
	"github.com/0xcro3dile/mohur-go/internal/domain/knowledge"
	"github.com/0xcro3dile/mohur-go/internal/domain/matching"
	"github.com/0xcro3dile/mohur-go/internal/domain/ports"
)

// Fixed user-facing texts. Raw provider errors never reach the client.
const (
	MsgEmptyQuestion  = "Please type a question so I can help you."
	MsgLLMUnavailable = "I'm not sure about that one. My AI assistant isn't configured right now, so I can only answer questions from my knowledge base."
	MsgLLMFailure     = "I'm not sure about that. Try rephrasing your question."
)

// Resolver answers questions. It reads the knowledge base but never
// mutates it.
type Resolver struct {
	kb      ports.KnowledgeReader
	matcher *matching.Matcher
	rules   ports.RuleResponder
	llm     ports.GenerationService
}

// NewResolver creates a Resolver with injected dependencies.
func NewResolver(
	kb ports.KnowledgeReader,
	matcher *matching.Matcher,
	rules ports.RuleResponder,
	llm ports.GenerationService,
) *Resolver {
	if matcher == nil {
		matcher = matching.NewMatcher()
	}
	return &Resolver{
		kb:      kb,
		matcher: matcher,
		rules:   rules,
		llm:     llm,
	}
}

// Resolve produces the final answer for a query.
func (r *Resolver) Resolve(ctx context.Context, question string) entities.Resolution {
	// 1. Reject empty input before any stage runs.
	query := knowledge.Normalize(question)
	if query == "" {
		return entities.Resolution{
			Answer: MsgEmptyQuestion,
			Source: entities.SourceNone,
			Method: entities.MatchNone,
		}
	}

	// 2. Knowledge base via the similarity matcher.
	entries := r.kb.Snapshot()
	if res, ok := r.matcher.Match(query, entries); ok {
		log.Printf("[INFO] answered %q from knowledge base (method=%s score=%.2f)",
			truncate(query, 80), res.Method, res.Score)
		return entities.Resolution{
			Answer: res.Answer,
			Source: entities.SourceKnowledgeBase,
			Method: res.Method,
		}
	}

	// 3. Built-in rules.
	if text, ok := r.rules.Respond(query); ok {
		return entities.Resolution{
			Answer: text,
			Source: entities.SourceSystemRule,
			Method: entities.MatchNone,
		}
	}

	// 4. LLM fallback. The client returns an explicit outcome value.
	gen := r.llm.Generate(ctx, question, entries)
	res := entities.Resolution{
		Source: entities.SourceLLM,
		Method: entities.MatchNone,
	}
	switch gen.Outcome {
	case entities.GenerationOK:
		res.Answer = gen.Text
	case entities.GenerationUnavailable:
		res.Answer = MsgLLMUnavailable
	default:
		log.Printf("[WARN] generation failed for %q: %s", truncate(query, 80), gen.Reason)
		res.Answer = MsgLLMFailure
	}
	return res
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
