package notify_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AferriDaniel/coaster/pkg/notify"
)

func TestSlackWebhooks_UnmarshalText(t *testing.T) {
	t.Parallel()

	t.Run("parses URL and level names", func(t *testing.T) {
		t.Parallel()

		var ws notify.SlackWebhooks
		err := ws.UnmarshalText([]byte(`[{"url":"https://hooks.slack.test/a","levels":["WARN","ERROR"]}]`))
		require.NoError(t, err)
		require.Len(t, ws, 1)
		assert.Equal(t, "https://hooks.slack.test/a", ws[0].URL)
		assert.Equal(t, []slog.Level{slog.LevelWarn, slog.LevelError}, ws[0].Levels)
		assert.True(t, ws[0].Accepts(slog.LevelError))
		assert.False(t, ws[0].Accepts(slog.LevelInfo))
	})

	t.Run("empty input clears the set", func(t *testing.T) {
		t.Parallel()

		ws := notify.SlackWebhooks{{URL: "stale"}}
		require.NoError(t, ws.UnmarshalText([]byte("  ")))
		assert.Nil(t, ws)
	})

	t.Run("rejects unknown level name", func(t *testing.T) {
		t.Parallel()

		var ws notify.SlackWebhooks
		err := ws.UnmarshalText([]byte(`[{"url":"u","levels":["LOUD"]}]`))
		assert.Error(t, err)
	})
}

func TestSlackReporter_Report(t *testing.T) {
	t.Parallel()

	report := notify.Report{
		App:     "testapp",
		Level:   slog.LevelError,
		Message: "database exploded",
		Origin:  "store.go:42",
		Text: "database exploded\n\nStack frames (most recent call first):\n----\n" +
			"store.go:42 in Save\n\tuser = \"mort\"\n----------\nRequest context:\n    method: GET\n",
	}

	t.Run("posts payload to accepting webhook", func(t *testing.T) {
		t.Parallel()

		var got struct {
			Text        string `json:"text"`
			Attachments []struct {
				Pretext string `json:"pretext"`
				Text    string `json:"text"`
			} `json:"attachments"`
		}
		calls := int32(0)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		}))
		defer srv.Close()

		s := notify.NewSlackReporter("testapp", []notify.SlackWebhook{
			{URL: srv.URL, Levels: []slog.Level{slog.LevelError}},
		})
		require.NoError(t, s.Report(context.Background(), report))
		require.EqualValues(t, 1, atomic.LoadInt32(&calls))

		assert.Equal(t, "*ERROR* in testapp: database exploded", got.Text)
		require.NotEmpty(t, got.Attachments)
		assert.Equal(t, "database exploded", got.Attachments[0].Pretext)
		var pretexts []string
		for _, att := range got.Attachments {
			pretexts = append(pretexts, att.Pretext)
		}
		assert.Contains(t, pretexts, "store.go:42 in Save")
		assert.Contains(t, pretexts, "Request context:")
		for _, att := range got.Attachments {
			if att.Pretext == "store.go:42 in Save" {
				assert.Equal(t, "```\nuser = \"mort\"\n```", att.Text)
			}
		}
	})

	t.Run("skips webhooks that reject the level", func(t *testing.T) {
		t.Parallel()

		calls := int32(0)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		s := notify.NewSlackReporter("testapp", []notify.SlackWebhook{
			{URL: srv.URL, Levels: []slog.Level{slog.LevelError}},
		})
		info := report
		info.Level = slog.LevelInfo
		require.NoError(t, s.Report(context.Background(), info))
		assert.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("throttles repeats from one origin", func(t *testing.T) {
		t.Parallel()

		calls := int32(0)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		s := notify.NewSlackReporter("testapp", []notify.SlackWebhook{
			{URL: srv.URL, Levels: []slog.Level{slog.LevelError}},
		})
		require.NoError(t, s.Report(context.Background(), report))
		require.NoError(t, s.Report(context.Background(), report))
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

		other := report
		other.Origin = "store.go:99"
		require.NoError(t, s.Report(context.Background(), other))
		assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	})

	t.Run("unreachable webhook is not an error", func(t *testing.T) {
		t.Parallel()

		s := notify.NewSlackReporter("testapp", []notify.SlackWebhook{
			{URL: "http://127.0.0.1:1/hook", Levels: []slog.Level{slog.LevelError}},
		})
		assert.NoError(t, s.Report(context.Background(), report))
	})
}
