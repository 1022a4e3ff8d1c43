// Package calendarifictest provides an in-process fake of the Calendarific
// holidays endpoint for tests.
package calendarifictest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/briangreenhill/holidayagent/pkg/calendarific"
)

const APIKey = "test-key"

// Server serves /holidays from an in-memory table
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	holidays []calendarific.Holiday
	status   map[string]int // per-country HTTP status override
	metaCode map[string]int // per-country meta.code override
	requests []map[string]string
}

// NewServer starts a fake seeded with Seed() and closes it on test cleanup
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		holidays: Seed(),
		status:   map[string]int{},
		metaCode: map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Client returns a calendarific client pointed at the fake
func (s *Server) Client(opts ...calendarific.Option) *calendarific.Client {
	opts = append([]calendarific.Option{calendarific.WithBaseURL(s.URL)}, opts...)
	return calendarific.New(APIKey, opts...)
}

// FailCountry makes requests for code answer with the given HTTP status
func (s *Server) FailCountry(code string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[strings.ToUpper(code)] = status
}

// ProviderErrorFor makes requests for code answer 200 with the given meta.code
func (s *Server) ProviderErrorFor(code string, metaCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metaCode[strings.ToUpper(code)] = metaCode
}

// Add appends holidays to the table
func (s *Server) Add(h ...calendarific.Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays = append(s.holidays, h...)
}

// Requests returns the number of requests served
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// RequestsFor returns the number of requests naming country code
func (s *Server) RequestsFor(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r["country"] == strings.ToUpper(code) {
			n++
		}
	}
	return n
}

// LastQuery returns the query of the most recent request
func (s *Server) LastQuery() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/holidays" {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	flat := map[string]string{}
	for k := range q {
		flat[k] = q.Get(k)
	}

	s.mu.Lock()
	s.requests = append(s.requests, flat)
	country := strings.ToUpper(q.Get("country"))
	status, failing := s.status[country]
	metaCode, metaFailing := s.metaCode[country]
	holidays := append([]calendarific.Holiday(nil), s.holidays...)
	s.mu.Unlock()

	if q.Get("api_key") != APIKey {
		http.Error(w, `{"meta":{"code":401,"error_type":"auth failed"}}`, http.StatusUnauthorized)
		return
	}
	if failing {
		http.Error(w, "upstream failure", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if metaFailing {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"meta":     map[string]any{"code": metaCode, "error_type": "bad request", "error_detail": "provider says no"},
			"response": []any{},
		})
		return
	}

	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))
	day, _ := strconv.Atoi(q.Get("day"))
	typ := strings.ToLower(q.Get("type"))

	out := []calendarific.Holiday{}
	for _, h := range holidays {
		if country != "" && h.Country.Code() != country {
			continue
		}
		if h.Date.DateTime.Year != year {
			continue
		}
		if month != 0 && h.Date.DateTime.Month != month {
			continue
		}
		if day != 0 && h.Date.DateTime.Day != day {
			continue
		}
		if typ != "" && !hasType(h, typ) {
			continue
		}
		out = append(out, h)
	}

	_ = json.NewEncoder(w).Encode(calendarific.Response{
		Meta:     calendarific.Meta{Code: http.StatusOK},
		Response: calendarific.ResponseBody{Holidays: out},
	})
}

func hasType(h calendarific.Holiday, typ string) bool {
	for _, t := range h.Type {
		if strings.Contains(strings.ToLower(t), typ) {
			return true
		}
	}
	return false
}
