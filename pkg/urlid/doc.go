// Package urlid renders and parses compound URL identifiers that combine a
// primary key with an optional slug, e.g. "42-annual-report".
//
// Integer keys render as decimal strings. UUID keys render as 32-character
// dashless hex by default, or as compact base58/base64 strings when a
// shorter form is wanted. Parsing tolerates a trailing "-slug" portion and
// reports malformed keys as a non-match instead of failing, so stale or
// hand-edited URLs degrade to a 404 rather than an error page.
package urlid
