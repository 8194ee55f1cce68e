// Package slug generates URL-safe slugs from display titles.
//
// Titles are Unicode-folded (é → e, ß → ss), lowercased, and punctuation
// runs collapse into a single separator. Apostrophes and quote marks are
// removed rather than replaced, so "How's that?" becomes "hows-that".
//
//	slug.Make("Hello, World!")                      // "hello-world"
//	slug.Make("Café & Restaurant")                  // "cafe-restaurant"
//	slug.Make("Product Name", slug.Separator("_"))  // "product_name"
//	slug.Make("Very long title", slug.MaxLength(9)) // "very-long"
//
// Make never fails: empty or all-punctuation input yields "". Callers that
// need uniqueness or blank rejection should use core/naming, which layers
// collision suffixes and reserved-name checks on top of this package.
package slug
