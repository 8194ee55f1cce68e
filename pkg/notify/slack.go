package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// SlackWebhook is one configured Slack target: a webhook URL and the
// severity levels it accepts.
type SlackWebhook struct {
	URL    string       `json:"url"`
	Levels []slog.Level `json:"-"`

	// LevelNames carries the levels in configuration ("WARN", "ERROR");
	// parsed into Levels.
	LevelNames []string `json:"levels"`
}

// UnmarshalJSON parses the wire form and resolves level names.
func (w *SlackWebhook) UnmarshalJSON(data []byte) error {
	type raw SlackWebhook
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*w = SlackWebhook(r)
	w.Levels = w.Levels[:0]
	for _, name := range w.LevelNames {
		var level slog.Level
		if err := level.UnmarshalText([]byte(name)); err != nil {
			return fmt.Errorf("slack webhook level %q: %w", name, err)
		}
		w.Levels = append(w.Levels, level)
	}
	return nil
}

// Accepts reports whether the webhook wants records of the given level.
func (w SlackWebhook) Accepts(level slog.Level) bool {
	for _, l := range w.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// SlackWebhooks supports env configuration as a JSON array.
type SlackWebhooks []SlackWebhook

func (ws *SlackWebhooks) UnmarshalText(text []byte) error {
	if len(bytes.TrimSpace(text)) == 0 {
		*ws = nil
		return nil
	}
	return json.Unmarshal(text, (*[]SlackWebhook)(ws))
}

// SlackReporter posts failure reports to Slack webhooks. Delivery is
// fire-and-forget; errors and non-2xx responses are discarded.
type SlackReporter struct {
	app      string
	webhooks []SlackWebhook
	client   *http.Client
	throttle *Throttle
}

// SlackOption configures a SlackReporter.
type SlackOption func(*SlackReporter)

// WithSlackClient replaces the HTTP client.
func WithSlackClient(client *http.Client) SlackOption {
	return func(s *SlackReporter) {
		if client != nil {
			s.client = client
		}
	}
}

// WithSlackThrottle replaces the default throttle.
func WithSlackThrottle(t *Throttle) SlackOption {
	return func(s *SlackReporter) {
		if t != nil {
			s.throttle = t
		}
	}
}

// NewSlackReporter builds a reporter for the given webhook targets.
func NewSlackReporter(app string, webhooks []SlackWebhook, opts ...SlackOption) *SlackReporter {
	s := &SlackReporter{
		app:      app,
		webhooks: webhooks,
		client:   &http.Client{Timeout: 10 * time.Second},
		throttle: NewThrottle(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type slackAttachment struct {
	MrkdwnIn []string `json:"mrkdwn_in"`
	Fallback string   `json:"fallback"`
	Pretext  string   `json:"pretext"`
	Text     string   `json:"text"`
}

type slackPayload struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

// Report posts the failure to every webhook accepting its level, at most
// once per origin within the throttle window.
func (s *SlackReporter) Report(ctx context.Context, r Report) error {
	accepted := false
	for _, w := range s.webhooks {
		if w.Accepts(r.Level) {
			accepted = true
			break
		}
	}
	if !accepted {
		return nil
	}
	if !s.throttle.Allow(ctx, "slack:"+r.Origin) {
		return nil
	}

	payload := slackPayload{
		Text: fmt.Sprintf("*%s* in %s: %s", r.Level, s.app, r.Message),
	}
	for _, section := range splitSections(r.Text) {
		att := slackAttachment{
			MrkdwnIn: []string{"text"},
			Fallback: section.title,
			Pretext:  section.title,
		}
		if section.body != "" {
			att.Text = "```\n" + section.body + "\n```"
		}
		payload.Attachments = append(payload.Attachments, att)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	for _, w := range s.webhooks {
		if !w.Accepts(r.Level) {
			continue
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
		if err != nil {
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := s.client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
	}
	return nil
}

type reportSection struct {
	title string
	body  string
}

// splitSections carves a formatted report into Slack attachments along its
// section and frame delimiters. The first line of each chunk becomes the
// pretext, the remainder the attachment body.
func splitSections(text string) []reportSection {
	var sections []reportSection
	for _, major := range strings.Split(text, "----------") {
		for _, chunk := range strings.Split(major, "----") {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}
			title, body, _ := strings.Cut(chunk, "\n")
			sections = append(sections, reportSection{title: title, body: strings.TrimSpace(body)})
		}
	}
	return sections
}
