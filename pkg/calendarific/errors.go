package calendarific

import "fmt"

// ConfigurationError is returned when the client has no API key
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not set. Please add it to your environment or .env file", e.Setting)
}

// TransportError is returned for non-2xx HTTP responses
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calendarific API error: %s: %s", e.Status, e.Body)
}

// ProviderError is returned when meta.code signals failure on a 2xx response
type ProviderError struct {
	Code   int
	Type   string
	Detail string
}

func (e *ProviderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("calendarific returned error code %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("calendarific returned error code %d", e.Code)
}
