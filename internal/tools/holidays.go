package tools

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/briangreenhill/holidayagent/internal/aggregate"
	"github.com/briangreenhill/holidayagent/internal/countries"
	"github.com/briangreenhill/holidayagent/pkg/calendarific"
)

const (
	descHolidaysByCountry = `Fetches all holidays and observances for a country.
Use this when the user asks about holidays in a specific country (e.g. "holidays in Nigeria", "US holidays in 2025").
Requires a two-letter ISO 3166-1 alpha-2 country code and a year between 2000 and 2100.
Optionally narrow by month, day, or type (national, local, religious, observance).`

	descHolidaysForDate = `Gets all holidays on a specific date across major countries or in one country.
Use this when the user asks "What holidays are on December 25th?" or "Is my birthday a holiday anywhere?".
Results are sorted by country name.`

	descSearchHolidays = `Searches holidays by name or description across major countries or within one country.
Use this for questions like "When is Mother's Day?" or "Which countries celebrate Independence Day?".`

	descTodayHolidays = `Checks whether today is a holiday in a specific country or across major countries.
Use this when the user asks "Is today a holiday?" or "What holidays are today?".`
)

type ByCountryInput struct {
	Country string  `json:"country" jsonschema:"required,minLength=2,maxLength=2" jsonschema_description:"Two-letter ISO 3166-1 alpha-2 country code (e.g. US, GB, NG, IN)"`
	Year    int     `json:"year" jsonschema:"required,minimum=2000,maximum=2100" jsonschema_description:"Year for which to fetch holidays (e.g. 2025)"`
	Month   *int    `json:"month,omitempty" jsonschema:"minimum=1,maximum=12" jsonschema_description:"Optional month number (1=January, 12=December)"`
	Day     *int    `json:"day,omitempty" jsonschema:"minimum=1,maximum=31" jsonschema_description:"Optional day of the month (1-31)"`
	Type    *string `json:"type,omitempty" jsonschema:"enum=national,enum=local,enum=religious,enum=observance" jsonschema_description:"Optional holiday type filter"`
}

type CountryHoliday struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Type        []string `json:"type"`
	Country     string   `json:"country"`
}

type ByCountryQuery struct {
	Country string `json:"country"`
	Year    int    `json:"year"`
	Month   int    `json:"month,omitempty"`
	Day     int    `json:"day,omitempty"`
	Type    string `json:"type,omitempty"`
}

type ByCountryOutput struct {
	Holidays []CountryHoliday `json:"holidays"`
	Count    int              `json:"count"`
	Query    ByCountryQuery   `json:"query"`
}

// HolidaysByCountry fetches one country's holidays directly from the client
func (s *Service) HolidaysByCountry(ctx context.Context, in ByCountryInput) (*ByCountryOutput, error) {
	code, err := countryCode("country", in.Country)
	if err != nil {
		return nil, err
	}
	if err := yearIn(in.Year, 2000, 2100); err != nil {
		return nil, err
	}
	q := ByCountryQuery{Country: code, Year: in.Year}
	if in.Month != nil {
		if err := month(*in.Month); err != nil {
			return nil, err
		}
		q.Month = *in.Month
	}
	if in.Day != nil {
		if err := day(*in.Day); err != nil {
			return nil, err
		}
		q.Day = *in.Day
	}
	if err := holidayType(deref(in.Type)); err != nil {
		return nil, err
	}
	q.Type = deref(in.Type)

	s.log.Debug().Interface("query", q).Msg("fetching holidays by country")
	resp, err := s.client.Holidays(ctx, calendarific.Params{
		Country: q.Country, Year: q.Year, Month: q.Month, Day: q.Day, Type: q.Type,
	})
	if err != nil {
		return nil, wrap("fetch holidays", err)
	}

	holidays := make([]CountryHoliday, 0, len(resp.Response.Holidays))
	for _, h := range resp.Response.Holidays {
		holidays = append(holidays, CountryHoliday{
			Name:        h.Name,
			Description: h.Description,
			Date:        h.Date.ISODate(),
			Type:        types(h),
			Country:     h.Country.Name,
		})
	}
	return &ByCountryOutput{Holidays: holidays, Count: len(holidays), Query: q}, nil
}

type ForDateInput struct {
	Month   int     `json:"month" jsonschema:"required,minimum=1,maximum=12" jsonschema_description:"Month of the date (1=January, 12=December)"`
	Day     int     `json:"day" jsonschema:"required,minimum=1,maximum=31" jsonschema_description:"Day of the month (1-31)"`
	Year    *int    `json:"year,omitempty" jsonschema:"minimum=2000,maximum=2100" jsonschema_description:"Year to check; defaults to the current year"`
	Country *string `json:"country,omitempty" jsonschema:"minLength=2,maxLength=2" jsonschema_description:"Optional ISO code to check only one country"`
}

type DateHoliday struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	Type        []string `json:"type"`
}

type ForDateOutput struct {
	Date              string        `json:"date"`
	Holidays          []DateHoliday `json:"holidays"`
	TotalHolidays     int           `json:"totalHolidays"`
	CountriesSearched int           `json:"countriesSearched"`
}

// HolidaysForDate lists holidays on one calendar day, sorted by country name
func (s *Service) HolidaysForDate(ctx context.Context, in ForDateInput) (*ForDateOutput, error) {
	if err := month(in.Month); err != nil {
		return nil, err
	}
	if err := day(in.Day); err != nil {
		return nil, err
	}
	year := s.now().Year()
	if in.Year != nil {
		if err := yearIn(*in.Year, 2000, 2100); err != nil {
			return nil, err
		}
		year = *in.Year
	}
	code, err := optionalCountry("country", in.Country)
	if err != nil {
		return nil, err
	}

	codes := s.priorityCodes(datePriority)
	if code != "" {
		codes = []string{code}
	}

	res, err := s.agg.Run(ctx, codes, aggregate.Query{Year: year, Month: in.Month, Day: in.Day})
	if err != nil {
		return nil, wrap("get holidays for date", err)
	}

	holidays := aggregate.Collect(res, func(h calendarific.Holiday) (DateHoliday, bool) {
		return DateHoliday{
			Name:        h.Name,
			Description: h.Description,
			Country:     h.Country.Name,
			CountryCode: h.Country.Code(),
			Type:        types(h),
		}, true
	})
	countries.SortStable(holidays, func(h DateHoliday) string { return h.Country })

	return &ForDateOutput{
		Date:              calendarific.FormatDate(year, in.Month, in.Day),
		Holidays:          holidays,
		TotalHolidays:     len(holidays),
		CountriesSearched: res.Searched(),
	}, nil
}

type SearchInput struct {
	SearchTerm string  `json:"searchTerm" jsonschema:"required,minLength=2" jsonschema_description:"The holiday name or keyword to search for"`
	Country    *string `json:"country,omitempty" jsonschema:"minLength=2,maxLength=2" jsonschema_description:"Optional ISO code to limit the search to one country"`
	Year       *int    `json:"year,omitempty" jsonschema:"minimum=2001,maximum=2049" jsonschema_description:"Year to search; defaults to the current year"`
	Type       *string `json:"type,omitempty" jsonschema:"enum=national,enum=local,enum=religious,enum=observance"`
}

type SearchResult struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	Date        string   `json:"date"`
	Type        []string `json:"type"`
}

type SearchOutput struct {
	Results           []SearchResult `json:"results"`
	SearchTerm        string         `json:"searchTerm"`
	TotalFound        int            `json:"totalFound"`
	Year              int            `json:"year"`
	CountriesSearched int            `json:"countriesSearched"`
}

// SearchHolidays matches searchTerm against holiday names and descriptions
func (s *Service) SearchHolidays(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	if utf8.RuneCountInString(in.SearchTerm) < 2 {
		return nil, &ValidationError{Field: "searchTerm", Message: "must be at least 2 characters"}
	}
	code, err := optionalCountry("country", in.Country)
	if err != nil {
		return nil, err
	}
	year := s.now().Year()
	if in.Year != nil {
		if err := yearIn(*in.Year, 2001, 2049); err != nil {
			return nil, err
		}
		year = *in.Year
	}
	if err := holidayType(deref(in.Type)); err != nil {
		return nil, err
	}

	codes := s.priorityCodes(searchPriority)
	if code != "" {
		codes = []string{code}
	}

	res, err := s.agg.Run(ctx, codes, aggregate.Query{Year: year, Type: deref(in.Type)})
	if err != nil {
		return nil, wrap("search holidays", err)
	}

	term := strings.ToLower(in.SearchTerm)
	results := aggregate.Collect(res, func(h calendarific.Holiday) (SearchResult, bool) {
		if !strings.Contains(strings.ToLower(h.Name), term) && !strings.Contains(strings.ToLower(h.Description), term) {
			return SearchResult{}, false
		}
		return SearchResult{
			Name:        h.Name,
			Description: h.Description,
			Country:     h.Country.Name,
			CountryCode: h.Country.Code(),
			Date:        h.Date.ISODate(),
			Type:        types(h),
		}, true
	})

	return &SearchOutput{
		Results:           results,
		SearchTerm:        in.SearchTerm,
		TotalFound:        len(results),
		Year:              year,
		CountriesSearched: res.Searched(),
	}, nil
}

type TodayInput struct {
	Country *string `json:"country,omitempty" jsonschema:"minLength=2,maxLength=2" jsonschema_description:"Optional ISO code; without it major countries are checked"`
}

type TodayHoliday struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Country     string   `json:"country"`
	Type        []string `json:"type"`
}

type TodayOutput struct {
	Date              string         `json:"date"`
	IsHoliday         bool           `json:"isHoliday"`
	Holidays          []TodayHoliday `json:"holidays"`
	TotalHolidays     int            `json:"totalHolidays"`
	CountriesSearched int            `json:"countriesSearched"`
}

// TodayHolidays reports holidays falling on the service clock's date
func (s *Service) TodayHolidays(ctx context.Context, in TodayInput) (*TodayOutput, error) {
	code, err := optionalCountry("country", in.Country)
	if err != nil {
		return nil, err
	}
	codes := todayPriority
	if code != "" {
		codes = []string{code}
	}

	now := s.now()
	res, err := s.agg.Run(ctx, codes, aggregate.Query{Year: now.Year(), Month: int(now.Month()), Day: now.Day()})
	if err != nil {
		return nil, wrap("check today's holidays", err)
	}

	holidays := aggregate.Collect(res, func(h calendarific.Holiday) (TodayHoliday, bool) {
		return TodayHoliday{Name: h.Name, Description: h.Description, Country: h.Country.Name, Type: types(h)}, true
	})
	return &TodayOutput{
		Date:              now.Format("2006-01-02"),
		IsHoliday:         len(holidays) > 0,
		Holidays:          holidays,
		TotalHolidays:     len(holidays),
		CountriesSearched: res.Searched(),
	}, nil
}

// types never returns nil so the field encodes as a list
func types(h calendarific.Holiday) []string {
	if h.Type == nil {
		return []string{}
	}
	return h.Type
}
