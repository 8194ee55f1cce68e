package textutil

import (
	"html"
	"regexp"
)

// Obfuscated email patterns: "user at example dot com" and friends.
// Based on the decoding rules popularized by jasonpriem's obfuscation
// decoder.
var (
	deobfuscateDot1 = regexp.MustCompile(`(?i)\W+\.\W+|\W+dot\W+|\W+d0t\W+`)
	deobfuscateDot2 = regexp.MustCompile(`([a-z0-9])DOT([a-z0-9])`)
	deobfuscateDot3 = regexp.MustCompile(`([A-Z0-9])dot([A-Z0-9])`)
	deobfuscateAt1  = regexp.MustCompile(`(?i)\W*@\W*|\W+at\W+`)
	deobfuscateAt2  = regexp.MustCompile(`([a-z0-9])AT([a-z0-9])`)
	deobfuscateAt3  = regexp.MustCompile(`([A-Z0-9])at([A-Z0-9])`)
)

// DeobfuscateEmail recovers email addresses written with spelled-out
// punctuation, e.g. "user at example dot com" → "user@example.com".
func DeobfuscateEmail(s string) string {
	s = html.UnescapeString(s)
	s = deobfuscateDot1.ReplaceAllString(s, ".")
	s = deobfuscateDot2.ReplaceAllString(s, "$1.$2")
	s = deobfuscateDot3.ReplaceAllString(s, "$1.$2")
	s = deobfuscateAt1.ReplaceAllString(s, "@")
	s = deobfuscateAt2.ReplaceAllString(s, "$1@$2")
	s = deobfuscateAt3.ReplaceAllString(s, "$1@$2")
	return s
}
