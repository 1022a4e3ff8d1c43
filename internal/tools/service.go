package tools

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/holidayagent/internal/aggregate"
	"github.com/briangreenhill/holidayagent/internal/countries"
)

const (
	ToolHolidaysByCountry  = "get-holidays-by-country"
	ToolHolidaysForDate    = "get-holidays-for-date"
	ToolSearchHolidays     = "search-holidays-by-name"
	ToolTodayHolidays      = "check-today-holidays"
	ToolValidateCountry    = "validate-country-code"
	ToolSupportedCountries = "get-supported-countries"
)

// Service holds the dependencies shared by every tool
type Service struct {
	client aggregate.Fetcher
	agg    *aggregate.Aggregator
	dir    *countries.Directory
	now    func() time.Time
	log    zerolog.Logger
}

type Option func(*Service)

// WithClock sets the source of "today" and the default year
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithDirectory(d *countries.Directory) Option {
	return func(s *Service) {
		if d != nil {
			s.dir = d
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService wires the tools to a holiday client and an aggregator built
// over the same client.
func NewService(client aggregate.Fetcher, agg *aggregate.Aggregator, opts ...Option) *Service {
	s := &Service{
		client: client,
		agg:    agg,
		dir:    countries.Default(),
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Registry returns a registry with every holiday tool
func (s *Service) Registry() *Registry {
	return NewRegistry(
		newTool(ToolHolidaysByCountry, descHolidaysByCountry, s.HolidaysByCountry),
		newTool(ToolHolidaysForDate, descHolidaysForDate, s.HolidaysForDate),
		newTool(ToolSearchHolidays, descSearchHolidays, s.SearchHolidays),
		newTool(ToolTodayHolidays, descTodayHolidays, s.TodayHolidays),
		newTool(ToolValidateCountry, descValidateCountry, s.ValidateCountry),
		newTool(ToolSupportedCountries, descSupportedCountries, s.SupportedCountries),
	)
}

// priorityCodes filters codes to the directory, keeping their order
func (s *Service) priorityCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if s.dir.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
