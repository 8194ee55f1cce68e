package textutil

import (
	"strings"
	"unicode"
)

// Invisible format characters that used to be classified as whitespace.
// Spelled as escapes; several of these are not legal as raw bytes in a
// Go source file.
const formatWhitespace = "\u0085\u00a0\u1680\u180e" +
	"\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200a" +
	"\u200b\u200c\u200d\u2028\u2029\u202f\u205f\u2060\u3000\ufeff"

// ASCII control whitespace plus the format characters above.
const extendedWhitespace = "\t\n\v\f\r\x1c\x1d\x1e\x1f " + formatWhitespace

func isExtendedSpace(r rune) bool {
	return strings.ContainsRune(extendedWhitespace, r)
}

func isFormatSpace(r rune) bool {
	return strings.ContainsRune(formatWhitespace, r)
}

// NormalizeSpaces replaces every space-like character, including line
// breaks, with a regular space.
func NormalizeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if isExtendedSpace(r) {
			return ' '
		}
		return r
	}, s)
}

// NormalizeSpacesMultiline replaces space-like format characters with
// regular spaces while preserving line breaks.
func NormalizeSpacesMultiline(s string) string {
	return strings.Map(func(r rune) rune {
		if isFormatSpace(r) {
			return ' '
		}
		return r
	}, s)
}

// CompressWhitespace reduces whitespace runs to single spaces and strips
// them from both ends.
func CompressWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) || isExtendedSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// StripLeft trims extended whitespace from the left side of a string.
func StripLeft(s string) string {
	return strings.TrimLeft(s, extendedWhitespace)
}

// StripRight trims extended whitespace from the right side of a string.
func StripRight(s string) string {
	return strings.TrimRight(s, extendedWhitespace)
}

// Strip trims extended whitespace from both ends of a string.
func Strip(s string) string {
	return strings.Trim(s, extendedWhitespace)
}

// SimplifyText lowercases text, drops punctuation, and collapses spaces to
// produce a comparison key:
//
//	SimplifyText("Awesome Coder, wanted  at Awesome Company! ")
//	// "awesome coder wanted at awesome company"
func SimplifyText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return CompressWhitespace(b.String())
}
