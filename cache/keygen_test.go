package cache

import "testing"

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		expected string
	}{
		{"no params", nil, "/holidays"},
		{"sorted", map[string]string{"year": "2025", "country": "NG"}, "/holidays?country=NG&year=2025"},
		{"empty values dropped", map[string]string{"year": "2025", "month": "", "type": ""}, "/holidays?year=2025"},
		{"all fields", map[string]string{"type": "national", "day": "25", "month": "12", "year": "2025", "country": "US"},
			"/holidays?country=US&day=25&month=12&type=national&year=2025"},
		{"escaped", map[string]string{"q": "a b&c"}, "/holidays?q=a+b%26c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFor("/holidays", tt.params); got != tt.expected {
				t.Errorf("KeyFor() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestKeyForOmittedEqualsEmpty(t *testing.T) {
	a := KeyFor("/holidays", map[string]string{"year": "2025", "country": "NG"})
	b := KeyFor("/holidays", map[string]string{"year": "2025", "country": "NG", "month": "", "day": "", "type": ""})
	if a != b {
		t.Errorf("omitted and empty params should share a key: %q vs %q", a, b)
	}
}
