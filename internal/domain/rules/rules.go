// Package rules implements the built-in canned responses for a small fixed
// set of intents: date, time, greetings, and thanks. Knowledge-base answers
// always take precedence; the resolver consults these rules only after the
// store found no match.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var wordRe = regexp.MustCompile(`\w+`)

// Word lists checked in strict priority order.
var (
	dateWords     = []string{"date", "today"}
	timeWords     = []string{"time", "clock"}
	greetingWords = []string{"hi", "hello", "hey", "greetings"}
	thanksWords   = []string{"thanks", "thank", "thx"}
)

const (
	greetingResponse = "Hello 👋! How can I help you today?"
	thanksResponse   = "You're welcome! Happy to help 😊"
)

// Responder produces canned responses. The clock is injected so the
// date/time rules are testable.
type Responder struct {
	now func() time.Time
}

// NewResponder creates a responder using the system clock.
func NewResponder() *Responder {
	return &Responder{now: time.Now}
}

// NewResponderWithClock creates a responder with a fixed clock source.
func NewResponderWithClock(now func() time.Time) *Responder {
	return &Responder{now: now}
}

// Respond checks the query's tokens against the fixed word lists, in
// priority order date, time, greeting, thanks. It returns the first
// matching canned response.
func (r *Responder) Respond(query string) (string, bool) {
	tokens := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(query), -1) {
		tokens[w] = struct{}{}
	}

	switch {
	case containsAny(tokens, dateWords):
		return fmt.Sprintf("Today's date is %s.", r.now().Format("January 02, 2006")), true
	case containsAny(tokens, timeWords):
		return fmt.Sprintf("The current time is %s.", r.now().Format("3:04 PM")), true
	case containsAny(tokens, greetingWords):
		return greetingResponse, true
	case containsAny(tokens, thanksWords):
		return thanksResponse, true
	}
	return "", false
}

func containsAny(tokens map[string]struct{}, words []string) bool {
	for _, w := range words {
		if _, ok := tokens[w]; ok {
			return true
		}
	}
	return false
}
