package calendarific

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Response mirrors the Calendarific /holidays payload
type Response struct {
	Meta     Meta         `json:"meta"`
	Response ResponseBody `json:"response"`
}

type Meta struct {
	Code        int    `json:"code"`
	ErrorType   string `json:"error_type,omitempty"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

type ResponseBody struct {
	Holidays []Holiday `json:"holidays"`
}

// UnmarshalJSON accepts the bare empty array Calendarific sends
// in place of an object when it has nothing to return.
func (b *ResponseBody) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || strings.HasPrefix(trimmed, "[") {
		b.Holidays = nil
		return nil
	}
	type plain ResponseBody
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = ResponseBody(p)
	return nil
}

type Holiday struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Country      Country         `json:"country"`
	Date         Date            `json:"date"`
	Type         []string        `json:"type"`
	PrimaryType  string          `json:"primary_type,omitempty"`
	CanonicalURL string          `json:"canonical_url,omitempty"`
	URLID        string          `json:"urlid,omitempty"`
	Locations    string          `json:"locations,omitempty"`
	States       json.RawMessage `json:"states,omitempty"` // "All" or a list of objects
}

type Country struct {
	ID   string `json:"id"` // ISO 3166-1 alpha-2, lowercase on the wire
	Name string `json:"name"`
}

// Code returns the uppercase country code
func (c Country) Code() string {
	return strings.ToUpper(c.ID)
}

type Date struct {
	ISO      string   `json:"iso"`
	DateTime DateTime `json:"datetime"`
}

type DateTime struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ISODate returns the YYYY-MM-DD form, derived from the decomposed
// fields when the provider left iso empty.
func (d Date) ISODate() string {
	if len(d.ISO) >= 10 {
		return d.ISO[:10]
	}
	if d.ISO != "" {
		return d.ISO
	}
	if d.DateTime.Year == 0 {
		return ""
	}
	return FormatDate(d.DateTime.Year, d.DateTime.Month, d.DateTime.Day)
}

// Consistent reports whether iso and datetime name the same day
func (d Date) Consistent() bool {
	if len(d.ISO) < 10 {
		return false
	}
	return d.ISO[:10] == FormatDate(d.DateTime.Year, d.DateTime.Month, d.DateTime.Day)
}

func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
