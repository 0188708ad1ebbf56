// Package urlparam reads and writes the query parameters roster keeps in
// the URL.
//
// Two conventions are shared by every routed view:
//
//	page := urlparam.Page(query)  // ?page=3 -> 3, ?page=abc -> 1, absent -> 1
//	term := urlparam.Query(query) // ?q=rick -> "rick", absent -> ""
//
// Neither ever fails: malformed input falls back to the default.
package urlparam

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

const (
	// PageKey is the query parameter holding the 1-based page number.
	PageKey = "page"

	// QueryKey is the query parameter holding the free-text search term.
	QueryKey = "q"

	// DefaultPage is used whenever the page parameter is absent or unusable.
	DefaultPage = 1
)

// ParseInt parses the leading base-10 integer of s.
//
// Leading whitespace and a single sign are accepted, and parsing stops at the
// first non-digit, so "  42px" yields 42. ok is false when no digit follows
// the optional sign or the value does not fit in an int.
func ParseInt(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// Int returns the integer value of key, or def when the parameter is
// absent, unparseable or zero.
func Int(q url.Values, key string, def int) int {
	n, ok := ParseInt(q.Get(key))
	if !ok || n == 0 {
		return def
	}
	return n
}

// String returns the value of key, or def when the parameter is absent or
// empty.
func String(q url.Values, key, def string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return def
}

// Page returns the page parameter, defaulting to DefaultPage.
func Page(q url.Values) int {
	return Int(q, PageKey, DefaultPage)
}

// Query returns the free-text search term, defaulting to "".
func Query(q url.Values) string {
	return String(q, QueryKey, "")
}

// Values converts a flat parameter map into url.Values, dropping empty values.
func Values(params map[string]string) url.Values {
	values := make(url.Values, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	return values
}

// Encode renders params as a query string sorted by key. Empty values are
// omitted; an empty map encodes to "".
func Encode(params map[string]string) string {
	return Values(params).Encode()
}
