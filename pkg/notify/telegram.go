package notify

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// TelegramMessageLimit is Telegram's maximum message length.
const TelegramMessageLimit = 4096

// TelegramReporter posts failure reports to a Telegram chat through the
// bot API. Delivery is fire-and-forget.
type TelegramReporter struct {
	app      string
	chatID   string
	apiKey   string
	apiBase  string
	client   *http.Client
	throttle *Throttle
}

// TelegramOption configures a TelegramReporter.
type TelegramOption func(*TelegramReporter)

// WithTelegramClient replaces the HTTP client.
func WithTelegramClient(client *http.Client) TelegramOption {
	return func(t *TelegramReporter) {
		if client != nil {
			t.client = client
		}
	}
}

// WithTelegramThrottle replaces the default throttle.
func WithTelegramThrottle(throttle *Throttle) TelegramOption {
	return func(t *TelegramReporter) {
		if throttle != nil {
			t.throttle = throttle
		}
	}
}

// WithTelegramAPIBase overrides the bot API endpoint, for tests.
func WithTelegramAPIBase(base string) TelegramOption {
	return func(t *TelegramReporter) {
		if base != "" {
			t.apiBase = strings.TrimSuffix(base, "/")
		}
	}
}

// NewTelegramReporter builds a reporter for one chat.
func NewTelegramReporter(app, chatID, apiKey string, opts ...TelegramOption) *TelegramReporter {
	t := &TelegramReporter{
		app:      app,
		chatID:   chatID,
		apiKey:   apiKey,
		apiBase:  "https://api.telegram.org",
		client:   &http.Client{Timeout: 10 * time.Second},
		throttle: NewThrottle(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Report sends the failure as an HTML message, capped at Telegram's
// message limit, at most once per origin within the throttle window.
func (t *TelegramReporter) Report(ctx context.Context, r Report) error {
	if !t.throttle.Allow(ctx, "telegram:"+r.Origin) {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> in <b>%s</b>: %s",
		html.EscapeString(r.Level.String()),
		html.EscapeString(t.app),
		html.EscapeString(r.Message),
	)
	for _, section := range splitSections(r.Text) {
		b.WriteString("\n\n")
		b.WriteString(html.EscapeString(section.title))
		if section.body != "" {
			b.WriteString("\n<pre>")
			b.WriteString(html.EscapeString(section.body))
			b.WriteString("</pre>")
		}
	}

	text := TruncateHTML(b.String(), TelegramMessageLimit)

	form := url.Values{
		"chat_id":         {t.chatID},
		"parse_mode":      {"html"},
		"text":            {text},
		"disable_preview": {"true"},
	}
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := t.client.Do(req)
	if err != nil {
		return nil
	}
	resp.Body.Close()
	return nil
}

// TruncateHTML caps text at limit bytes without splitting a UTF-8
// sequence or leaving a <pre> block unbalanced. The reserved tail fits a
// closing tag plus an ellipsis.
func TruncateHTML(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	// Reserve room for "</pre>" and the ellipsis.
	cut := limit - len("</pre>") - len("…")
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	text = text[:cut]
	if strings.Count(text, "<pre>") > strings.Count(text, "</pre>") {
		text += "</pre>"
	}
	return text + "…"
}
