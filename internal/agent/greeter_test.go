package agent_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/briangreenhill/holidayagent/internal/agent"
)

type stubAgent struct {
	text   string
	err    error
	prompt string
}

func (s *stubAgent) Generate(_ context.Context, msgs []agent.Message) (*agent.Response, error) {
	if len(msgs) > 0 {
		s.prompt = msgs[len(msgs)-1].Content
	}
	if s.err != nil {
		return nil, s.err
	}
	return &agent.Response{Text: s.text}, nil
}

var oct14 = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func TestGreet(t *testing.T) {
	stub := &stubAgent{text: "Nothing major worldwide today."}
	g := agent.NewGreeter(stub, agent.WithGreeterClock(func() time.Time { return oct14 }))

	got := g.Greet(context.Background())
	assert.True(t, strings.HasPrefix(got, "Hi there! 👋\n\nToday is **14th October, 2026**."))
	assert.Contains(t, got, "Nothing major worldwide today.")
	assert.Contains(t, stub.prompt, "Wednesday, October 14, 2026")
}

func TestGreetFallsBack(t *testing.T) {
	g := agent.NewGreeter(agent.Unavailable{}, agent.WithGreeterClock(func() time.Time { return oct14 }))
	got := g.Greet(context.Background())
	assert.Contains(t, got, "Today is **14th October, 2026**.")
	assert.Contains(t, got, "Global Holiday Assistant")

	g = agent.NewGreeter(&stubAgent{err: errors.New("boom")}, agent.WithGreeterClock(func() time.Time { return oct14 }))
	assert.Contains(t, g.Greet(context.Background()), "How can I help you today?")
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th",
		13: "13th", 21: "21st", 22: "22nd", 23: "23rd", 30: "30th", 31: "31st", 111: "111th",
	}
	for n, want := range tests {
		assert.Equal(t, want, agent.Ordinal(n))
	}
}

func TestShortDate(t *testing.T) {
	assert.Equal(t, "1st January, 2025", agent.ShortDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
