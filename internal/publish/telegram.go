// Package publish posts a finished report to the external messaging
// channel (a Telegram bot chat). The core treats this as an opaque
// collaborator: it reports ok or a human-readable reason, unmodified.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Katapios/lazybones/internal/store"
)

// Result is the channel's verdict, passed through to the caller as-is.
type Result struct {
	OK     bool
	Reason string
}

type Publisher struct {
	Token  string
	ChatID string
	Client *http.Client

	// BaseURL overrides the Telegram API host in tests.
	BaseURL string
}

func (p *Publisher) baseURL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}
	return "https://api.telegram.org"
}

func (p *Publisher) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}

// Publish formats the report and sends it to the configured chat.
func (p *Publisher) Publish(ctx context.Context, r *store.Report) Result {
	if p.Token == "" || p.ChatID == "" {
		return Result{Reason: "telegram credentials not configured"}
	}

	form := url.Values{}
	form.Set("chat_id", p.ChatID)
	form.Set("text", FormatReport(r))

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", p.baseURL(), p.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client().Do(req)
	if err != nil {
		return Result{Reason: err.Error()}
	}
	defer resp.Body.Close()

	var body struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{Reason: fmt.Sprintf("decode response: %v", err)}
	}
	if !body.OK {
		reason := body.Description
		if reason == "" {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return Result{Reason: reason}
	}
	return Result{OK: true}
}

// FormatReport renders a report as the channel message text: checklist
// first, then good and bad bullet lists.
func FormatReport(r *store.Report) string {
	var b strings.Builder

	b.WriteString("Report for ")
	b.WriteString(r.Date.Format("2006-01-02"))
	b.WriteString("\n")

	if r.Content != "" {
		b.WriteString(r.Content)
		b.WriteString("\n")
	}

	if len(r.Checklist) > 0 {
		b.WriteString("\nPlan:\n")
		for _, item := range r.Checklist {
			b.WriteString("  • ")
			b.WriteString(item)
			b.WriteString("\n")
		}
	}
	if len(r.GoodItems) > 0 {
		b.WriteString("\nGood:\n")
		for _, item := range r.GoodItems {
			b.WriteString("  + ")
			b.WriteString(item)
			b.WriteString("\n")
		}
	}
	if len(r.BadItems) > 0 {
		b.WriteString("\nBad:\n")
		for _, item := range r.BadItems {
			b.WriteString("  - ")
			b.WriteString(item)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
