package verbquery

import (
	"net/url"
	"strings"
)

// SplitList splits a comma-separated query parameter, trimming each item and
// dropping empty ones. "A1, A2,," yields [A1 A2].
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EscapeLike escapes LIKE metacharacters so prefix matches the literal text.
func EscapeLike(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix)
}

// QueryKeys returns the keys of a raw query string in request order, so
// "sein&haben=1&sein" yields [sein haben sein]. Keys that fail to unescape
// are skipped.
func QueryKeys(rawQuery string) []string {
	var keys []string
	for _, pair := range strings.Split(rawQuery, "&") {
		key, _, _ := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		k, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}
