package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AferriDaniel/coaster/core/email"
)

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("writes body and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)
		err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "admin@example.com",
			Subject:  "testapp failure",
			BodyText: "worker crashed\n\nStack frames (most recent call first):\n",
			Tag:      "failure_report",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var bodyFile, metaFile string
		for _, e := range entries {
			switch filepath.Ext(e.Name()) {
			case ".txt":
				bodyFile = e.Name()
			case ".json":
				metaFile = e.Name()
			}
		}
		require.NotEmpty(t, bodyFile)
		require.NotEmpty(t, metaFile)
		assert.Contains(t, bodyFile, "failure_report")

		body, err := os.ReadFile(filepath.Join(dir, bodyFile))
		require.NoError(t, err)
		assert.Contains(t, string(body), "worker crashed")

		var meta struct {
			SendTo  string `json:"send_to"`
			Subject string `json:"subject"`
			Tag     string `json:"tag"`
		}
		raw, err := os.ReadFile(filepath.Join(dir, metaFile))
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "admin@example.com", meta.SendTo)
		assert.Equal(t, "testapp failure", meta.Subject)
		assert.Equal(t, "failure_report", meta.Tag)
	})

	t.Run("HTML-only message gets an html file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)
		err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "admin@example.com",
			Subject:  "digest",
			BodyHTML: "<p>hi</p>",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		found := false
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".html") {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		t.Parallel()

		sender := email.NewDevSender(t.TempDir())
		err := sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "nope"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})
}
