package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/holidayagent/internal/agent"
	"github.com/briangreenhill/holidayagent/internal/config"
	appmw "github.com/briangreenhill/holidayagent/internal/http/middleware"
	"github.com/briangreenhill/holidayagent/internal/metrics"
	"github.com/briangreenhill/holidayagent/internal/tools"
)

// DefaultAgentID is the path segment the agent card advertises
const DefaultAgentID = "holidayAgent"

// Greeter produces the opening message of a conversation
type Greeter interface {
	Greet(ctx context.Context) string
}

type Server struct {
	Router  *chi.Mux
	Agents  map[string]agent.Agent
	Greeter Greeter
	Tools   *tools.Registry
	Metrics *metrics.Collectors
	BaseURL string

	log zerolog.Logger
	now func() time.Time
}

type ServerOptions struct {
	Agent   agent.Agent
	AgentID string
	Greeter Greeter
	Tools   *tools.Registry
	Metrics *metrics.Collectors
	Cfg     config.Config
	Logger  zerolog.Logger
	Now     func() time.Time
}

func New(opts ServerOptions) *Server {
	if opts.AgentID == "" {
		opts.AgentID = DefaultAgentID
	}
	if opts.Agent == nil {
		opts.Agent = agent.Unavailable{}
	}
	if opts.Greeter == nil {
		opts.Greeter = agent.NewGreeter(opts.Agent, agent.WithGreeterLogger(opts.Logger))
	}
	if opts.Tools == nil {
		opts.Tools = tools.NewRegistry()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(appmw.AccessLog(opts.Logger)...)
	r.Use(appmw.Metrics(opts.Metrics))
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:  r,
		Agents:  map[string]agent.Agent{opts.AgentID: opts.Agent},
		Greeter: opts.Greeter,
		Tools:   opts.Tools,
		Metrics: opts.Metrics,
		BaseURL: opts.Cfg.BaseURL,
		log:     opts.Logger,
		now:     opts.Now,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			s.log.Error().Err(err).Msg("write health check response")
		}
	})
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	r.Get("/.well-known/agent.json", s.handleAgentCard)
	r.Post("/a2a/agent/{agentID}", s.handleA2A)

	r.Route("/api/tools", func(tr chi.Router) {
		tr.Get("/", s.handleListTools)
		tr.Post("/{name}", s.handleCallTool)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response")
	}
}
