// Package mail delivers account emails.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	applog "housingbuddy/internal/log"

	"github.com/go-resty/resty/v2"
)

var ErrDelivery = errors.New("mail delivery failed")

var verifyTmpl = template.Must(template.New("verify").Parse(
	`<p>{{.Name}}님, 하우징버디 가입을 환영합니다.</p>` +
		`<p><a href="{{.Link}}">이메일 인증하기</a></p>` +
		`<p>링크는 24시간 동안 유효합니다.</p>`))

// Resend sends through the Resend HTTP API.
type Resend struct {
	URL  string
	Key  string
	From string
	http *resty.Client
}

func NewResend(url, key, from string, timeout time.Duration) *Resend {
	return &Resend{URL: strings.TrimRight(url, "/"), Key: key, From: from, http: resty.New().SetTimeout(timeout)}
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Resend) SendVerification(ctx context.Context, to, name, link string) error {
	var body strings.Builder
	if err := verifyTmpl.Execute(&body, struct{ Name, Link string }{name, link}); err != nil {
		return err
	}
	r, err := m.http.R().SetContext(ctx).
		SetAuthToken(m.Key).
		SetBody(resendEmail{From: m.From, To: []string{to}, Subject: "[하우징버디] 이메일 인증", HTML: body.String()}).
		Post(m.URL + "/emails")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if r.IsError() {
		return fmt.Errorf("%w: resend: %s", ErrDelivery, r.Status())
	}
	return nil
}

// Log records the send in the application log instead of mailing. Used
// when no API key is set. The token in the link is redacted.
type Log struct{}

func (Log) SendVerification(_ context.Context, to, _, link string) error {
	applog.Event("info", "mail.verification.logged", nil, map[string]any{"to": to, "link": maskToken(link)})
	return nil
}

// maskToken replaces the token query value of link.
func maskToken(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return "[unparseable link]"
	}
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "redacted")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
