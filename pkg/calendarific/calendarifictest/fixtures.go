package calendarifictest

import (
	"strings"

	"github.com/briangreenhill/holidayagent/pkg/calendarific"
)

// Holiday builds a fixture entry with a consistent iso/datetime date
func Holiday(code, countryName, name string, year, month, day int, types ...string) calendarific.Holiday {
	if len(types) == 0 {
		types = []string{"National holiday"}
	}
	return calendarific.Holiday{
		Name:        name,
		Description: name + " is a holiday in " + countryName,
		Country:     calendarific.Country{ID: strings.ToLower(code), Name: countryName},
		Date: calendarific.Date{
			ISO:      calendarific.FormatDate(year, month, day),
			DateTime: calendarific.DateTime{Year: year, Month: month, Day: day},
		},
		Type:      types,
		Locations: "All",
	}
}

// Seed is the default table: a handful of 2025 holidays in a few countries
func Seed() []calendarific.Holiday {
	return []calendarific.Holiday{
		Holiday("NG", "Nigeria", "New Year's Day", 2025, 1, 1),
		Holiday("NG", "Nigeria", "Workers' Day", 2025, 5, 1),
		Holiday("NG", "Nigeria", "Independence Day", 2025, 10, 1),
		Holiday("NG", "Nigeria", "Christmas Day", 2025, 12, 25),
		Holiday("NG", "Nigeria", "Boxing Day", 2025, 12, 26),

		Holiday("US", "United States", "New Year's Day", 2025, 1, 1),
		Holiday("US", "United States", "Independence Day", 2025, 7, 4),
		Holiday("US", "United States", "Thanksgiving Day", 2025, 11, 27),
		Holiday("US", "United States", "Christmas Day", 2025, 12, 25),

		Holiday("GB", "United Kingdom", "New Year's Day", 2025, 1, 1),
		Holiday("GB", "United Kingdom", "Christmas Day", 2025, 12, 25),
		Holiday("GB", "United Kingdom", "Boxing Day", 2025, 12, 26),

		Holiday("DE", "Germany", "Christmas Day", 2025, 12, 25),
		Holiday("DE", "Germany", "Day of German Unity", 2025, 10, 3),

		Holiday("FR", "France", "Bastille Day", 2025, 7, 14),
		Holiday("FR", "France", "Christmas Day", 2025, 12, 25),

		Holiday("CA", "Canada", "Canada Day", 2025, 7, 1),
		Holiday("CA", "Canada", "Christmas Day", 2025, 12, 25),

		Holiday("IN", "India", "Independence Day", 2025, 8, 15, "National holiday"),
		Holiday("IN", "India", "Diwali", 2025, 10, 20, "Gazetted holiday"),
	}
}
