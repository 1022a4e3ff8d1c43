package routes

import (
	"net/http"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
)

// AgentCard is the discovery document served at /.well-known/agent.json.
// Capabilities are declared here because proactive greetings are not part
// of the a2a card schema.
type AgentCard struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Version        string           `json:"version"`
	ServiceURL     string           `json:"serviceUrl"`
	Authentication Authentication   `json:"authentication"`
	Capabilities   Capabilities     `json:"capabilities"`
	Skills         []a2a.AgentSkill `json:"skills"`
}

type Authentication struct {
	Schemes []string `json:"schemes"`
}

type Capabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
	ProactiveMessages bool `json:"proactiveMessages"`
}

const cardVersion = "1.0.0"

// BuildAgentCard describes the holiday agent served under baseURL.
func BuildAgentCard(baseURL string) AgentCard {
	return AgentCard{
		Name:           "Global Holiday Agent",
		Description:    "Your AI assistant for discovering holidays and observances from over 230 countries worldwide.",
		Version:        cardVersion,
		ServiceURL:     strings.TrimRight(baseURL, "/") + "/a2a/agent/" + DefaultAgentID,
		Authentication: Authentication{Schemes: []string{}},
		Capabilities: Capabilities{
			Streaming:         false,
			PushNotifications: false,
			ProactiveMessages: true,
		},
		Skills: []a2a.AgentSkill{{
			ID:          "get-holidays",
			Name:        "get-holidays",
			Description: "Get holidays for any country and date",
			Tags:        []string{"holidays", "calendar"},
			Examples: []string{
				"What holidays does Nigeria have?",
				"Is today a holiday in the US?",
				"When is Mother's Day?",
			},
		}},
	}
}

func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, BuildAgentCard(s.origin(r)))
}

// origin prefers the configured base URL and falls back to the request host.
func (s *Server) origin(r *http.Request) string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}
