package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/marconi-lab/annotator/internal/config"
	mq "github.com/marconi-lab/annotator/internal/infra/queue"
)

// Message is the wire shape consumed by the external delivery worker.
type Message struct {
	To      []string `json:"to"`
	Sender  string   `json:"sender"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

var verificationTmpl = template.Must(template.New("verification").Parse(
	`<h2>Confirm your email</h2><p>Thanks for signing up to the annotation platform.
Please follow <a href="{{.Link}}">this link</a> to verify your email address.
The link expires in {{.TTL}}.</p>`))

var signupNoticeTmpl = template.Must(template.New("signup_notice").Parse(
	`<h2>New Project Signup</h2><p>A new user, {{.Email}}, has registered for the project.</p>
<p>Please login to the <a href="{{.Console}}">system</a> to add them to the project annotator's list.</p>`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(
	`<h2>Password reset</h2><p>Your password reset request has been received!
Please follow <a href="{{.Link}}">this link</a> to reset your password.</p>`))

// Mailer renders outbound email and hands it to the mail queue. Delivery is
// fire-and-forget: a failed publish is logged and never fails the caller's
// request.
type Mailer struct {
	pub *mq.Publisher
	cfg *config.Config
	log *zap.Logger
}

func New(pub *mq.Publisher, cfg *config.Config, log *zap.Logger) *Mailer {
	return &Mailer{pub: pub, cfg: cfg, log: log}
}

func (m *Mailer) SendVerification(ctx context.Context, email, link string) {
	html, err := render(verificationTmpl, map[string]any{
		"Link": link,
		"TTL":  m.cfg.Auth.VerifyTokenTTL.String(),
	})
	if err != nil {
		m.log.Error("render verification email", zap.Error(err))
		return
	}
	m.dispatch(ctx, []string{email}, "Verify your annotation platform account", html)
}

func (m *Mailer) SendSignupNotice(ctx context.Context, newUserEmail string) {
	if len(m.cfg.Mail.ProjectAdmins) == 0 {
		return
	}
	html, err := render(signupNoticeTmpl, map[string]any{
		"Email":   newUserEmail,
		"Console": m.cfg.Mail.AdminConsole,
	})
	if err != nil {
		m.log.Error("render signup notice", zap.Error(err))
		return
	}
	m.dispatch(ctx, m.cfg.Mail.ProjectAdmins, "New annotator signup", html)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, link string) {
	html, err := render(passwordResetTmpl, map[string]any{"Link": link})
	if err != nil {
		m.log.Error("render password reset email", zap.Error(err))
		return
	}
	m.dispatch(ctx, []string{email}, "Annotation platform password reset", html)
}

func (m *Mailer) dispatch(ctx context.Context, to []string, subject, html string) {
	msg := Message{
		To:      to,
		Sender:  m.cfg.Mail.Sender,
		Subject: subject,
		HTML:    html,
	}
	if err := m.pub.PublishJSON(ctx, msg); err != nil {
		m.log.Error("publish mail job",
			zap.Strings("to", to),
			zap.String("subject", subject),
			zap.Error(err))
	}
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
