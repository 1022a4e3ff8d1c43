package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Greeter writes the proactive message sent when a conversation opens
type Greeter struct {
	agent Agent
	now   func() time.Time
	log   zerolog.Logger
}

type GreeterOption func(*Greeter)

func WithGreeterClock(now func() time.Time) GreeterOption {
	return func(g *Greeter) {
		if now != nil {
			g.now = now
		}
	}
}

func WithGreeterLogger(l zerolog.Logger) GreeterOption {
	return func(g *Greeter) { g.log = l }
}

func NewGreeter(a Agent, opts ...GreeterOption) *Greeter {
	g := &Greeter{agent: a, now: time.Now, log: zerolog.Nop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Greet asks the agent about today's holidays. It never fails: when the
// agent errors the static capabilities greeting is returned instead.
func (g *Greeter) Greet(ctx context.Context) string {
	today := g.now()
	short := ShortDate(today)

	resp, err := Ask(ctx, g.agent, greetingPrompt(today))
	if err != nil {
		g.log.Warn().Err(err).Msg("holiday greeting fell back to static text")
		return fallbackGreeting(short)
	}

	return fmt.Sprintf("Hi there! 👋\n\nToday is **%s**.\n\n%s\n\nFeel free to ask me about holidays in any country or on any specific date! 🌍", short, resp.Text)
}

func greetingPrompt(today time.Time) string {
	return fmt.Sprintf(`Today is %s. What holidays are being celebrated today worldwide?
Include major holidays from different countries (US, UK, Canada, India, Nigeria, etc.)
and also mention any international observances.

Format your response in a warm, conversational tone suitable as a greeting message.
Start with acknowledging today's date, then list the holidays with brief descriptions.
Keep it concise but informative: aim for 3-5 major holidays.`, today.Format("Monday, January 2, 2006"))
}

func fallbackGreeting(short string) string {
	return fmt.Sprintf(`Hi there! 👋

Today is **%s**.

I'm your Global Holiday Assistant! I can help you discover holidays and observances from over 230 countries worldwide.

Feel free to ask me:
• "What holidays does Nigeria have in 2025?"
• "When is Mother's Day celebrated?"
• "Is today a holiday in the US?"
• "Tell me about Independence Days worldwide"

How can I help you today? 🌍`, short)
}

// ShortDate formats t as "14th October, 2026"
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", Ordinal(t.Day()), t.Month(), t.Year())
}

// Ordinal returns n with its English suffix: 1st, 2nd, 3rd, 11th, 22nd
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
