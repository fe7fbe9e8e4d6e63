package updater

import (
	"net/url"
	"regexp"
	"strings"
)

// Default values for the six attribution parameters added to click URLs.
const (
	defaultUTMSource = "tiktok"
	defaultUTMMedium = "paid"
	defaultTFSource  = "tiktok"
	defaultTFMedium  = "paid_social"
)

// queryParam is one name/value pair of a query string. Parameters are kept
// as an ordered slice rather than url.Values so that reassembly preserves
// the original parameter order instead of sorting names.
type queryParam struct {
	Name  string
	Value string
}

// UpdateClickURL prepends the click tracker to the original click URL and
// fills in the utm_/tf_ attribution parameters that are missing. Existing
// parameters are never overridden, so the function is idempotent on its own
// output. An empty original URL stays empty regardless of the tracker.
func UpdateClickURL(originalURL, clickTracker, campaignName string) string {
	if originalURL == "" {
		return ""
	}

	current := strings.TrimSpace(originalURL)
	if tracker := strings.TrimSpace(clickTracker); tracker != "" {
		// Literal prefix, no separator: DCM click trackers already end in
		// a form ready for concatenation.
		current = tracker + current
	}

	base, query, fragment := splitURL(current)
	params := parseQuery(query)

	params = appendIfMissing(params, "utm_source", defaultUTMSource)
	params = appendIfMissing(params, "utm_medium", defaultUTMMedium)
	params = appendIfMissing(params, "utm_campaign", campaignName)
	params = appendIfMissing(params, "tf_source", defaultTFSource)
	params = appendIfMissing(params, "tf_medium", defaultTFMedium)
	params = appendIfMissing(params, "tf_campaign", campaignName)

	return joinURL(base, encodeQuery(params), fragment)
}

// ExtractImpressionURL pulls the impression pixel URL out of raw tracker
// text. DCM sheets wrap the URL in double quotes inside an ins tag; the
// first quoted substring wins. Text without quotes is returned trimmed.
func ExtractImpressionURL(trackerText string) string {
	if trackerText == "" {
		return ""
	}
	if m := quotedSubstring.FindStringSubmatch(trackerText); m != nil {
		return m[1]
	}
	return strings.TrimSpace(trackerText)
}

var quotedSubstring = regexp.MustCompile(`"([^"]*)"`)

// splitURL separates a raw URL string into base, query and fragment. The
// base is everything before the first '?' (with the fragment peeled off
// first), so a string that does not parse as a URL degrades to an opaque
// base with no query rather than an error.
func splitURL(raw string) (base, query, fragment string) {
	if i := strings.Index(raw, "#"); i >= 0 {
		raw, fragment = raw[:i], raw[i+1:]
	}
	if i := strings.Index(raw, "?"); i >= 0 {
		return raw[:i], raw[i+1:], fragment
	}
	return raw, "", fragment
}

// parseQuery decodes a query string into an ordered parameter list. Blank
// values are kept, repeated names collapse to their first value, and tokens
// that fail standard unescaping are kept verbatim.
func parseQuery(query string) []queryParam {
	if query == "" {
		return nil
	}
	var params []queryParam
	seen := make(map[string]struct{})
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		name, value := part, ""
		if i := strings.Index(part, "="); i >= 0 {
			name, value = part[:i], part[i+1:]
		}
		name = unescapeToken(name)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		params = append(params, queryParam{Name: name, Value: unescapeToken(value)})
	}
	return params
}

func unescapeToken(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func hasParam(params []queryParam, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func appendIfMissing(params []queryParam, name, value string) []queryParam {
	if hasParam(params, name) {
		return params
	}
	return append(params, queryParam{Name: name, Value: value})
}

// encodeQuery re-encodes the parameter list in order, with standard
// query-string escaping (spaces become '+').
func encodeQuery(params []queryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// joinURL reassembles the pieces produced by splitURL. A URL whose base and
// fragment are both empty collapses to the empty string.
func joinURL(base, query, fragment string) string {
	if base == "" && fragment == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(base)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if fragment != "" {
		b.WriteByte('#')
		b.WriteString(fragment)
	}
	return b.String()
}
