package cache

import (
	"net/url"
	"sort"
	"strings"
)

// KeyFor builds a stable cache key from path + params.
// Params are sorted by name and empty values are dropped, so an omitted
// field and an explicitly empty one produce the same key.
func KeyFor(path string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return path
	}

	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}
	return path + "?" + strings.Join(parts, "&")
}
