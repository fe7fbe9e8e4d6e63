package updater

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// defaultParams is the fixed tail appended to a click URL that has none of
// the six attribution parameters.
func defaultParams(campaign string) string {
	return fmt.Sprintf(
		"utm_source=tiktok&utm_medium=paid&utm_campaign=%s&tf_source=tiktok&tf_medium=paid_social&tf_campaign=%s",
		campaign, campaign)
}

func TestUpdateClickURLEmptyOriginal(t *testing.T) {
	assert.Equal(t, "", UpdateClickURL("", "", "C1"))
	assert.Equal(t, "", UpdateClickURL("", "https://ad.doubleclick.net/clk;123;", "C1"))
}

func TestUpdateClickURLAddsMissingDefaults(t *testing.T) {
	got := UpdateClickURL("http://x.com/a", "", "C1")
	assert.Equal(t, "http://x.com/a?"+defaultParams("C1"), got)
}

func TestUpdateClickURLPreservesExistingParams(t *testing.T) {
	got := UpdateClickURL("http://x.com/a?utm_source=existing", "", "C1")
	// Existing parameters keep their position and value; the five missing
	// defaults are appended in fixed order.
	assert.Equal(t,
		"http://x.com/a?utm_source=existing&utm_medium=paid&utm_campaign=C1&tf_source=tiktok&tf_medium=paid_social&tf_campaign=C1",
		got)
}

func TestUpdateClickURLPrependsTracker(t *testing.T) {
	got := UpdateClickURL("http://x.com/a", "PRE|", "C1")
	assert.Equal(t, "PRE|http://x.com/a?"+defaultParams("C1"), got)
}

func TestUpdateClickURLTrimsTrackerAndURL(t *testing.T) {
	got := UpdateClickURL("  http://x.com/a  ", "  PRE|  ", "C1")
	assert.Equal(t, "PRE|http://x.com/a?"+defaultParams("C1"), got)
}

func TestUpdateClickURLEmptyCampaignInserted(t *testing.T) {
	got := UpdateClickURL("http://x.com/a", "", "")
	// An empty campaign is inserted with an empty value, not omitted.
	assert.Equal(t, "http://x.com/a?"+defaultParams(""), got)
}

func TestUpdateClickURLParameterConventions(t *testing.T) {
	// Documented parser convention: parameters keep their original
	// relative order, repeated names collapse to the first value, blank
	// values survive, and spaces re-encode as '+'.
	got := UpdateClickURL("http://x.com/a?b=2&a=1&a=9&empty=&q=a%20b", "", "Summer Sale")
	assert.Equal(t,
		"http://x.com/a?b=2&a=1&empty=&q=a+b&"+defaultParams("Summer+Sale"),
		got)
}

func TestUpdateClickURLKeepsFragment(t *testing.T) {
	got := UpdateClickURL("http://x.com/a#section", "", "C1")
	assert.Equal(t, "http://x.com/a?"+defaultParams("C1")+"#section", got)
}

func TestUpdateClickURLMalformedEscapeKeptVerbatim(t *testing.T) {
	// Tokens that fail standard unescaping are opaque, never an error.
	got := UpdateClickURL("http://x.com/a?bad=%zz", "", "C1")
	assert.Equal(t,
		"http://x.com/a?bad=%25zz&"+defaultParams("C1"),
		got)
}

func TestUpdateClickURLOpaqueNonURLInput(t *testing.T) {
	got := UpdateClickURL("not a url at all", "", "C1")
	assert.Equal(t, "not a url at all?"+defaultParams("C1"), got)
}

func TestUpdateClickURLIdempotentOnParams(t *testing.T) {
	once := UpdateClickURL("http://x.com/a?utm_medium=cpc", "PRE|", "C1")
	// The tracker is already part of the URL after the first pass, so the
	// second pass runs without one; all six parameters are present and
	// never overridden.
	twice := UpdateClickURL(once, "", "C1")
	assert.Equal(t, once, twice)
}

func TestExtractImpressionURL(t *testing.T) {
	tests := []struct {
		name    string
		tracker string
		want    string
	}{
		{"quoted url", `foo "http://track.me/imp" bar`, "http://track.me/imp"},
		{"first quoted pair wins", `a "one" b "two"`, "one"},
		{"no quotes trimmed", "  no quotes here  ", "no quotes here"},
		{"single quote falls back to trim", ` lone " quote `, `lone " quote`},
		{"empty quotes", `pixel: ""`, ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractImpressionURL(tt.tracker))
		})
	}
}
