package tools

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var holidayTypes = []string{"national", "local", "religious", "observance"}

func countryCode(field, v string) (string, error) {
	if utf8.RuneCountInString(v) != 2 {
		return "", &ValidationError{Field: field, Message: "Country code must be exactly 2 characters"}
	}
	return strings.ToUpper(v), nil
}

// optionalCountry validates v only when it is set
func optionalCountry(field string, v *string) (string, error) {
	if v == nil || *v == "" {
		return "", nil
	}
	return countryCode(field, *v)
}

func yearIn(v, lo, hi int) error {
	if v < lo {
		return &ValidationError{Field: "year", Message: fmt.Sprintf("Year must be %d or later", lo)}
	}
	if v > hi {
		return &ValidationError{Field: "year", Message: fmt.Sprintf("Year must be %d or earlier", hi)}
	}
	return nil
}

func month(v int) error {
	if v < 1 || v > 12 {
		return &ValidationError{Field: "month", Message: "Month must be between 1 and 12"}
	}
	return nil
}

func day(v int) error {
	if v < 1 || v > 31 {
		return &ValidationError{Field: "day", Message: "Day must be between 1 and 31"}
	}
	return nil
}

func holidayType(v string) error {
	if v == "" {
		return nil
	}
	for _, t := range holidayTypes {
		if v == t {
			return nil
		}
	}
	return &ValidationError{Field: "type", Message: "must be one of " + strings.Join(holidayTypes, ", ")}
}

// deref returns *p or zero
func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
