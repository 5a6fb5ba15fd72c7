// Package mailer delivers outbound application mail over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"microblog/internal/config"
	"microblog/internal/middleware"
	"microblog/internal/models"

	"gopkg.in/gomail.v2"
)

// Mailer sends account-related mail. Delivery is best-effort; callers must not
// treat a delivery failure as a request failure.
type Mailer interface {
	SendActivationMail(user *models.User, token string) error
}

var activationTemplate = template.Must(template.New("activation").Parse(
	`Hi {{.Name}},

Thanks for signing up. Please confirm your email address by opening the link below:

{{.ConfirmURL}}

If you did not create this account, you can ignore this message.
`))

// SMTPMailer sends mail through an SMTP relay using gomail.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewSMTPMailer returns a Mailer backed by the configured SMTP relay.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:    cfg.MailFrom,
		baseURL: cfg.BaseURL,
	}
}

// SendActivationMail delivers the email-confirmation message for a pending account.
func (m *SMTPMailer) SendActivationMail(user *models.User, token string) error {
	var body bytes.Buffer
	err := activationTemplate.Execute(&body, struct {
		Name       string
		ConfirmURL string
	}{
		Name:       user.Name,
		ConfirmURL: fmt.Sprintf("%s/api/auth/confirm/%s", m.baseURL, token),
	})
	if err != nil {
		return fmt.Errorf("failed to render activation mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", "Confirm your email address")
	msg.SetBody("text/plain", body.String())

	return m.dialer.DialAndSend(msg)
}

// Dispatch sends the activation mail on a background goroutine. Failures are
// logged and counted, never returned; account creation already committed.
func Dispatch(m Mailer, user *models.User, token string) {
	// Copy what the goroutine needs so the caller can keep mutating user.
	u := *user
	go func() {
		if err := m.SendActivationMail(&u, token); err != nil {
			middleware.MailDeliveries.WithLabelValues("failure").Inc()
			middleware.Logger.Warn("activation mail delivery failed",
				slog.String("email", u.Email),
				slog.String("error", err.Error()),
			)
			return
		}
		middleware.MailDeliveries.WithLabelValues("success").Inc()
	}()
}
