// Package aggregate queries several countries one after another and merges
// the holidays, tolerating per-country failures.
package aggregate

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/briangreenhill/holidayagent/pkg/calendarific"
)

const DefaultDelay = 100 * time.Millisecond

// Fetcher is satisfied by *calendarific.Client
type Fetcher interface {
	Holidays(ctx context.Context, p calendarific.Params) (*calendarific.Response, error)
}

// Query holds the parameters shared by every country in a run
type Query struct {
	Year  int
	Month int
	Day   int
	Type  string
}

func (q Query) params(code string) calendarific.Params {
	return calendarific.Params{Country: code, Year: q.Year, Month: q.Month, Day: q.Day, Type: q.Type}
}

// CountryResult is the outcome for one country: Holidays on success,
// Err on failure.
type CountryResult struct {
	Code     string
	Holidays []calendarific.Holiday
	Err      error
}

func (r CountryResult) OK() bool { return r.Err == nil }

type Result struct {
	Countries []CountryResult
}

// Holidays concatenates successful countries' holidays in run order
func (r *Result) Holidays() []calendarific.Holiday {
	var out []calendarific.Holiday
	for _, c := range r.Countries {
		if c.OK() {
			out = append(out, c.Holidays...)
		}
	}
	return out
}

// Searched counts the countries that answered
func (r *Result) Searched() int {
	n := 0
	for _, c := range r.Countries {
		if c.OK() {
			n++
		}
	}
	return n
}

func (r *Result) Failed() []CountryResult {
	var out []CountryResult
	for _, c := range r.Countries {
		if !c.OK() {
			out = append(out, c)
		}
	}
	return out
}

// Collect maps every successful holiday through fn, keeping those for
// which fn reports true.
func Collect[T any](r *Result, fn func(calendarific.Holiday) (T, bool)) []T {
	out := []T{}
	for _, h := range r.Holidays() {
		if v, ok := fn(h); ok {
			out = append(out, v)
		}
	}
	return out
}

type Aggregator struct {
	fetch Fetcher
	delay time.Duration
	log   zerolog.Logger
}

type Option func(*Aggregator)

// WithDelay sets the minimum spacing between the starts of consecutive
// country requests. A request slower than d is followed immediately by
// the next one; failed requests count the same as successful ones.
func WithDelay(d time.Duration) Option {
	return func(a *Aggregator) {
		if d >= 0 {
			a.delay = d
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(a *Aggregator) { a.log = l }
}

func New(f Fetcher, opts ...Option) *Aggregator {
	a := &Aggregator{fetch: f, delay: DefaultDelay, log: zerolog.Nop()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run fetches codes sequentially. Per-country failures are recorded in
// the result, never returned; the only error is the context ending, in
// which case the countries finished so far are returned with it.
func (a *Aggregator) Run(ctx context.Context, codes []string, q Query) (*Result, error) {
	res := &Result{Countries: make([]CountryResult, 0, len(codes))}

	var lim *rate.Limiter
	if len(codes) > 1 && a.delay > 0 {
		lim = rate.NewLimiter(rate.Every(a.delay), 1)
	}

	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return res, err
			}
		}

		resp, err := a.fetch.Holidays(ctx, q.params(code))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			a.log.Warn().Err(err).Str("country", code).Msg("country skipped")
			res.Countries = append(res.Countries, CountryResult{Code: code, Err: err})
			continue
		}

		hs := resp.Response.Holidays
		if len(hs) > 0 {
			a.log.Debug().Str("country", code).Int("holidays", len(hs)).Msg("country fetched")
		}
		res.Countries = append(res.Countries, CountryResult{Code: code, Holidays: hs})
	}

	if failed := len(res.Failed()); failed > 0 {
		a.log.Info().Int("searched", res.Searched()).Int("failed", failed).Msg("aggregate finished with failures")
	}
	return res, nil
}
