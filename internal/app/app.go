// Package app wires the holiday components from configuration.
package app

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/holidayagent/cache"
	"github.com/briangreenhill/holidayagent/internal/agent"
	"github.com/briangreenhill/holidayagent/internal/aggregate"
	"github.com/briangreenhill/holidayagent/internal/config"
	"github.com/briangreenhill/holidayagent/internal/metrics"
	"github.com/briangreenhill/holidayagent/internal/tools"
	"github.com/briangreenhill/holidayagent/pkg/calendarific"
)

type App struct {
	Client  *calendarific.Client
	Metrics *metrics.Collectors
	Service *tools.Service
	Tools   *tools.Registry
	Agent   agent.Agent
	Greeter *agent.Greeter
}

// New builds every component. Without an OpenAI key the agent is
// agent.Unavailable and greetings use the static fallback.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, err := cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	m := metrics.New()

	client := calendarific.New(cfg.Calendarific.APIKey,
		calendarific.WithBaseURL(cfg.Calendarific.BaseURL),
		calendarific.WithHTTPClient(&http.Client{Timeout: cfg.Calendarific.Timeout}),
		calendarific.WithCache(store),
		calendarific.WithCacheProviderErrors(cfg.Calendarific.CacheProviderErrors),
		calendarific.WithMaxConcurrent(cfg.Calendarific.MaxConcurrent),
		calendarific.WithObserver(m),
		calendarific.WithLogger(log.With().Str("component", "calendarific").Logger()),
	)
	agg := aggregate.New(client,
		aggregate.WithDelay(cfg.AggregateDelay),
		aggregate.WithLogger(log.With().Str("component", "aggregate").Logger()),
	)
	svc := tools.NewService(client, agg, tools.WithLogger(log.With().Str("component", "tools").Logger()))
	reg := svc.Registry()

	var ag agent.Agent = agent.Unavailable{}
	if cfg.HasOpenAI() {
		ag = agent.NewOpenAI(
			agent.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, nil),
			reg,
			agent.WithModel(cfg.OpenAI.Model),
			agent.WithMaxToolRounds(cfg.OpenAI.MaxToolRounds),
			agent.WithLogger(log.With().Str("component", "agent").Logger()),
		)
	}

	return &App{
		Client:  client,
		Metrics: m,
		Service: svc,
		Tools:   reg,
		Agent:   ag,
		Greeter: agent.NewGreeter(ag, agent.WithGreeterLogger(log)),
	}, nil
}
