// Package countries maps country display names to ISO 3166-1 alpha-2 codes.
package countries

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Directory is a read-only lookup over a country table. The zero value is
// empty; use Default for the built-in table.
type Directory struct {
	entries []Country
	byName  map[string]string
	byCode  map[string]string
}

// New builds a directory over entries. On duplicate names or codes the
// first entry in table order wins.
func New(entries []Country) *Directory {
	d := &Directory{
		entries: append([]Country(nil), entries...),
		byName:  make(map[string]string, len(entries)),
		byCode:  make(map[string]string, len(entries)),
	}
	for _, c := range d.entries {
		if _, ok := d.byName[c.Name]; !ok {
			d.byName[c.Name] = c.Code
		}
		if _, ok := d.byCode[c.Code]; !ok {
			d.byCode[c.Code] = c.Name
		}
	}
	return d
}

var builtin = New(table)

// Default returns the directory of Calendarific-supported countries
func Default() *Directory { return builtin }

// CodeForName resolves a display name, trying an exact match before a
// case-insensitive scan.
func (d *Directory) CodeForName(name string) (string, bool) {
	if code, ok := d.byName[name]; ok {
		return code, true
	}
	for _, c := range d.entries {
		if strings.EqualFold(c.Name, name) {
			return c.Code, true
		}
	}
	return "", false
}

func (d *Directory) NameForCode(code string) (string, bool) {
	name, ok := d.byCode[strings.ToUpper(code)]
	return name, ok
}

func (d *Directory) Has(code string) bool {
	_, ok := d.NameForCode(code)
	return ok
}

// Search returns every entry whose name or code contains query,
// case-insensitively, in table order.
func (d *Directory) Search(query string) []Country {
	q := strings.ToLower(query)
	out := []Country{}
	for _, c := range d.entries {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Code), q) {
			out = append(out, c)
		}
	}
	return out
}

func (d *Directory) All() []Country {
	return append([]Country(nil), d.entries...)
}

func (d *Directory) Len() int { return len(d.entries) }

// SortByName orders cs by display name in place
func SortByName(cs []Country) {
	SortStable(cs, func(c Country) string { return c.Name })
}

// SortStable orders items by key using English collation, so accented
// names sort next to their unaccented neighbours.
func SortStable[T any](items []T, key func(T) string) {
	col := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(key(items[i]), key(items[j])) < 0
	})
}
