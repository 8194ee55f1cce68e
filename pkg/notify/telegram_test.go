package notify_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AferriDaniel/coaster/pkg/notify"
)

func TestTelegramReporter_Report(t *testing.T) {
	t.Parallel()

	report := notify.Report{
		App:     "testapp",
		Level:   slog.LevelError,
		Message: "cache <dead>",
		Origin:  "cache.go:17",
		Text:    "cache <dead>\n\nStack frames (most recent call first):\n----\ncache.go:17 in Get\n\tkey = \"user:1\"\n",
	}

	t.Run("posts HTML form to the bot endpoint", func(t *testing.T) {
		t.Parallel()

		var (
			gotPath string
			gotForm url.Values
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, r.ParseForm())
			gotForm = r.PostForm
		}))
		defer srv.Close()

		tr := notify.NewTelegramReporter("testapp", "-100200", "bot-key",
			notify.WithTelegramAPIBase(srv.URL))
		require.NoError(t, tr.Report(context.Background(), report))

		assert.Equal(t, "/botbot-key/sendMessage", gotPath)
		assert.Equal(t, "-100200", gotForm.Get("chat_id"))
		assert.Equal(t, "html", gotForm.Get("parse_mode"))

		text := gotForm.Get("text")
		assert.Contains(t, text, "<b>ERROR</b> in <b>testapp</b>: cache &lt;dead&gt;")
		assert.Contains(t, text, "cache.go:17 in Get")
		assert.Contains(t, text, "<pre>key = &#34;user:1&#34;</pre>")
		assert.LessOrEqual(t, len(text), notify.TelegramMessageLimit)
	})

	t.Run("throttles repeats from one origin", func(t *testing.T) {
		t.Parallel()

		calls := int32(0)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		tr := notify.NewTelegramReporter("testapp", "-100200", "bot-key",
			notify.WithTelegramAPIBase(srv.URL))
		require.NoError(t, tr.Report(context.Background(), report))
		require.NoError(t, tr.Report(context.Background(), report))
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})

	t.Run("unreachable API is not an error", func(t *testing.T) {
		t.Parallel()

		tr := notify.NewTelegramReporter("testapp", "-100200", "bot-key",
			notify.WithTelegramAPIBase("http://127.0.0.1:1"))
		assert.NoError(t, tr.Report(context.Background(), report))
	})
}

func TestTruncateHTML(t *testing.T) {
	t.Parallel()

	t.Run("short text passes through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "hello", notify.TruncateHTML("hello", 10))
	})

	t.Run("long text is capped with an ellipsis", func(t *testing.T) {
		t.Parallel()

		got := notify.TruncateHTML(strings.Repeat("a", 100), 40)
		assert.LessOrEqual(t, len(got), 40)
		assert.True(t, strings.HasSuffix(got, "…"))
	})

	t.Run("closes an unbalanced pre block", func(t *testing.T) {
		t.Parallel()

		text := "head\n<pre>" + strings.Repeat("x", 100)
		got := notify.TruncateHTML(text, 40)
		assert.LessOrEqual(t, len(got), 40)
		assert.True(t, strings.HasSuffix(got, "</pre>…"))
		assert.Equal(t, strings.Count(got, "<pre>"), strings.Count(got, "</pre>"))
	})

	t.Run("balanced pre blocks stay balanced", func(t *testing.T) {
		t.Parallel()

		text := "<pre>ok</pre>" + strings.Repeat("y", 100)
		got := notify.TruncateHTML(text, 40)
		assert.Equal(t, strings.Count(got, "<pre>"), strings.Count(got, "</pre>"))
		assert.False(t, strings.HasSuffix(got, "</pre>…"))
	})

	t.Run("never splits a multibyte rune", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("é", 100)
		for limit := 10; limit < 30; limit++ {
			got := notify.TruncateHTML(text, limit)
			assert.True(t, utf8.ValidString(got), "limit %d", limit)
			assert.LessOrEqual(t, len(got), limit)
		}
	})
}
