package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC)
	}
}

func TestResponder_Date(t *testing.T) {
	r := NewResponderWithClock(fixedClock())

	resp, ok := r.Respond("what is the date")

	require.True(t, ok)
	assert.Equal(t, "Today's date is March 07, 2025.", resp)
}

func TestResponder_Time(t *testing.T) {
	r := NewResponderWithClock(fixedClock())

	resp, ok := r.Respond("do you know the time")

	require.True(t, ok)
	assert.Equal(t, "The current time is 3:04 PM.", resp)
}

func TestResponder_Greeting(t *testing.T) {
	r := NewResponder()

	for _, q := range []string{"hello", "Hi there", "HEY"} {
		resp, ok := r.Respond(q)
		require.True(t, ok, "query %q should greet", q)
		assert.Equal(t, greetingResponse, resp)
	}
}

func TestResponder_Thanks(t *testing.T) {
	r := NewResponder()

	resp, ok := r.Respond("ok thanks a lot")

	require.True(t, ok)
	assert.Equal(t, thanksResponse, resp)
}

func TestResponder_DateBeatsGreeting(t *testing.T) {
	r := NewResponderWithClock(fixedClock())

	// Both a greeting word and a date word: date wins by priority.
	resp, ok := r.Respond("hello, what's today's date?")

	require.True(t, ok)
	assert.Contains(t, resp, "Today's date is")
}

func TestResponder_TokenBoundaries(t *testing.T) {
	r := NewResponder()

	// "update" contains "date" as a substring but not as a token.
	_, ok := r.Respond("can you update my account")

	assert.False(t, ok)
}

func TestResponder_NoMatch(t *testing.T) {
	r := NewResponder()

	_, ok := r.Respond("explain quantum entanglement")

	assert.False(t, ok)
}
