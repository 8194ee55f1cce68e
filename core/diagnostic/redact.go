package diagnostic

import (
	"regexp"
	"strings"
)

// FilteredMarker replaces values whose key or content matches a sensitive
// pattern.
const FilteredMarker = "[Filtered]"

// ErrorMarker replaces values that fail to render.
const ErrorMarker = "<ERROR WHILE PRINTING VALUE>"

// Sensitive key fragments, borrowed from Sentry's scrubbing defaults and
// expanded for PII.
var sensitiveKeyFragments = []string{
	"password",
	"secret",
	"passwd",
	"api_key",
	"apikey",
	"access_token",
	"auth_token",
	"_token",
	"token_",
	"credentials",
	"mysql_pwd",
	"stripetoken",
	"cardnumber",
	"email",
	"phone",
}

// Credit-card-like digit runs: 13 to 16 digits with optional space or dash
// separators.
var cardPattern = regexp.MustCompile(`\b(?:\d[ -]*?){13,16}\b`)

// filteredValue renders as the redaction marker no matter how it is
// printed.
type filteredValue struct{}

func (filteredValue) String() string   { return FilteredMarker }
func (filteredValue) GoString() string { return FilteredMarker }

// Filtered is the value substituted for anything caught by a key match.
var Filtered = filteredValue{}

// Redactor masks sensitive values during report rendering. The zero value
// is not usable; call NewRedactor.
type Redactor struct {
	keys *regexp.Regexp
	card *regexp.Regexp
}

// NewRedactor builds a redactor matching the default sensitive key
// fragments plus any extras. Fragments match case-insensitively anywhere
// in the key.
func NewRedactor(extraKeyFragments ...string) *Redactor {
	fragments := make([]string, 0, len(sensitiveKeyFragments)+len(extraKeyFragments))
	for _, f := range sensitiveKeyFragments {
		fragments = append(fragments, regexp.QuoteMeta(f))
	}
	for _, f := range extraKeyFragments {
		fragments = append(fragments, regexp.QuoteMeta(f))
	}
	return &Redactor{
		keys: regexp.MustCompile(`(?i)` + strings.Join(fragments, "|")),
		card: cardPattern,
	}
}

// Redact masks a value if its key matches a sensitive fragment, and masks
// card-number-like digit runs inside string values regardless of key.
func (r *Redactor) Redact(key string, value any) any {
	if r.keys.MatchString(key) {
		return Filtered
	}
	if s, ok := value.(string); ok {
		return r.card.ReplaceAllString(s, FilteredMarker)
	}
	return value
}
