package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AferriDaniel/coaster/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title string
		want  string
	}{
		{"This is a title", "this-is-a-title"},
		{"Hello, World!", "hello-world"},
		{"Invalid URL/slug here", "invalid-url-slug-here"},
		{"this.that", "this-that"},
		{"How 'bout this?", "how-bout-this"},
		{"How’s that?", "hows-that"},
		{"K & D", "k-d"},
		{"billion+ pageviews", "billion-pageviews"},
		{"Café & Restaurant", "cafe-restaurant"},
		{"naïve résumé", "naive-resume"},
		{"Straße in München", "strasse-in-munchen"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"", ""},
		{"!!!", ""},
		{"42", "42"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.title, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, slug.Make(tc.title))
		})
	}
}

func TestMakeOptions(t *testing.T) {
	t.Parallel()

	t.Run("max length trims at rune boundary", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "very-long", slug.Make("Very long title that exceeds limits", slug.MaxLength(9)))
	})

	t.Run("max length never ends with separator", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "very", slug.Make("Very long title", slug.MaxLength(5)))
	})

	t.Run("custom separator", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "document_title", slug.Make("Document Title", slug.Separator("_")))
	})

	t.Run("case preserved", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Product-Name", slug.Make("Product Name", slug.Lowercase(false)))
	})

	t.Run("custom replacements", func(t *testing.T) {
		t.Parallel()
		got := slug.Make("Tea & Coffee @ Home", slug.CustomReplace(map[string]string{"&": "and", "@": "at"}))
		assert.Equal(t, "tea-and-coffee-at-home", got)
	})

	t.Run("strip characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "price-100-00", slug.Make("Price: $100.00", slug.StripChars("$")))
	})

	t.Run("unicode length counting", func(t *testing.T) {
		t.Parallel()
		// Folding happens before truncation, so the limit applies to the
		// ASCII result.
		assert.Equal(t, "zurich", slug.Make("Zürich über Bäckerei", slug.MaxLength(6)))
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello-world", slug.Truncate("hello-world", 0, "-"))
	assert.Equal(t, "hello", slug.Truncate("hello-world", 6, "-"))
	assert.Equal(t, "hello-w", slug.Truncate("hello-world", 7, "-"))
}
