package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type config struct {
	separator    string
	maxLength    int
	lowercase    bool
	replacements map[string]string
	strip        string
}

// Option configures slug generation.
type Option func(*config)

// MaxLength limits the slug to n runes. Truncation never leaves a trailing
// separator. Zero or negative means unlimited.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the string inserted between words. Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		if s != "" {
			c.separator = s
		}
	}
}

// Lowercase controls case folding. Enabled by default.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// CustomReplace substitutes substrings before normalization, e.g.
// {"&": "and", "@": "at"}.
func CustomReplace(replacements map[string]string) Option {
	return func(c *config) {
		c.replacements = replacements
	}
}

// StripChars removes the given characters entirely instead of treating them
// as word boundaries.
func StripChars(chars string) Option {
	return func(c *config) {
		c.strip = chars
	}
}

// Quote-like characters vanish instead of splitting words, so contractions
// stay joined: "How's that?" → "hows-that".
const vanishing = "'\"`‘’“”′″‴"

// Single-rune folds that NFD decomposition cannot produce.
var foldExceptions = map[rune]string{
	'ß': "ss", 'ẞ': "SS",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "TH",
	'ł': "l", 'Ł': "L",
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a title into a URL-safe slug.
func Make(title string, opts ...Option) string {
	cfg := config{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := title
	for from, to := range cfg.replacements {
		s = strings.ReplaceAll(s, from, to)
	}
	if cfg.strip != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(cfg.strip, r) {
				return -1
			}
			return r
		}, s)
	}
	s = fold(s)
	if cfg.lowercase {
		s = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			b.WriteRune(r)
			pendingSep = false
		case strings.ContainsRune(vanishing, r):
			// dropped without splitting the word
		default:
			pendingSep = true
		}
	}

	out := b.String()
	if cfg.maxLength > 0 {
		out = Truncate(out, cfg.maxLength, cfg.separator)
	}
	return out
}

// Truncate cuts s to at most n runes and trims any dangling separator so the
// result never ends mid-boundary.
func Truncate(s string, n int, separator string) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) > n {
		s = string(r[:n])
	}
	for separator != "" && strings.HasSuffix(s, separator) {
		s = strings.TrimSuffix(s, separator)
	}
	return s
}

// SeparatorOf reports the separator the given options produce, for
// callers that post-process slugs, like suffix re-truncation.
func SeparatorOf(opts ...Option) string {
	cfg := config{separator: "-"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.separator
}

// fold strips diacritics and expands ligature-like runes to ASCII.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := foldExceptions[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	folded, _, err := transform.String(foldTransformer, b.String())
	if err != nil {
		return b.String()
	}
	return folded
}
