package tools

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/briangreenhill/holidayagent/internal/countries"
)

const (
	maxSuggestions = 5

	descValidateCountry = `Validates and converts between country names and ISO codes.
Use this when the user gives a country name and you need its code, or to check that a code exists.
Returns close matches when the input is not recognised.`

	descSupportedCountries = `Lists the countries with holiday data and their ISO codes, optionally filtered by a partial name or code (e.g. "United", "NG", "Island").
Answers without calling the holiday provider.`
)

type ValidateInput struct {
	Input string `json:"input" jsonschema:"required" jsonschema_description:"Country name or ISO code to validate (e.g. 'Nigeria', 'NG', 'United States', 'US')"`
}

type ValidateOutput struct {
	IsValid     bool                `json:"isValid"`
	CountryName *string             `json:"countryName"`
	CountryCode *string             `json:"countryCode"`
	Suggestions []countries.Country `json:"suggestions,omitzero"`
}

// ValidateCountry resolves a name or code. Unknown input is not an error:
// it yields isValid=false and up to five suggestions.
func (s *Service) ValidateCountry(_ context.Context, in ValidateInput) (*ValidateOutput, error) {
	input := strings.TrimSpace(in.Input)
	if input == "" {
		return nil, &ValidationError{Field: "input", Message: "must not be empty"}
	}

	if utf8.RuneCountInString(input) == 2 {
		if name, ok := s.dir.NameForCode(input); ok {
			code := strings.ToUpper(input)
			return &ValidateOutput{IsValid: true, CountryName: &name, CountryCode: &code}, nil
		}
	}
	if code, ok := s.dir.CodeForName(input); ok {
		name, _ := s.dir.NameForCode(code)
		return &ValidateOutput{IsValid: true, CountryName: &name, CountryCode: &code}, nil
	}

	suggestions := s.dir.Search(input)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return &ValidateOutput{IsValid: false, Suggestions: suggestions}, nil
}

type SupportedInput struct {
	SearchQuery string `json:"searchQuery,omitempty" jsonschema_description:"Optional filter on country name or code"`
}

type SupportedOutput struct {
	Countries      []countries.Country `json:"countries"`
	TotalCountries int                 `json:"totalCountries"`
	SearchQuery    string              `json:"searchQuery,omitempty"`
}

// SupportedCountries lists the directory, sorted by name
func (s *Service) SupportedCountries(_ context.Context, in SupportedInput) (*SupportedOutput, error) {
	var cs []countries.Country
	if q := strings.TrimSpace(in.SearchQuery); q != "" {
		cs = s.dir.Search(q)
	} else {
		cs = s.dir.All()
	}
	countries.SortByName(cs)
	return &SupportedOutput{Countries: cs, TotalCountries: len(cs), SearchQuery: in.SearchQuery}, nil
}
