// Package textutil provides whitespace normalization and text simplification
// helpers used when deriving names and rendering diagnostic reports.
//
// Unicode classifies some historic whitespace code points as format
// characters. They are invisible and usually arrive via copy-paste, so the
// helpers here treat them as whitespace too.
package textutil
