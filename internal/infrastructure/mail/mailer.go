// Package mail sends transactional storefront mail over SMTP with gomail.
package mail

import (
	"fmt"
	"html"

	gomail "gopkg.in/gomail.v2"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/auth"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/billing"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/config"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// Ensure Mailer satisfies both application ports.
var (
	_ auth.Mailer    = (*Mailer)(nil)
	_ billing.Mailer = (*Mailer)(nil)
)

// Disabled is the mailer used when SMTP is not configured: password-reset
// links and invoice mails are logged instead of sent, so the flows that mail
// is part of still complete.
type Disabled struct {
	log *logger.Logger
}

// NewDisabled builds the no-SMTP mailer.
func NewDisabled(log *logger.Logger) *Disabled {
	return &Disabled{log: log}
}

var _ auth.Mailer = (*Disabled)(nil)

// SendPasswordReset logs the reset link instead of mailing it.
func (d *Disabled) SendPasswordReset(to, name, resetURL string) error {
	d.log.Warn().Str("to", to).Str("url", resetURL).Msg("mail disabled, password reset link not sent")
	return nil
}

// Mailer delivers mail through one SMTP account.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	brand  string
	log    *logger.Logger
}

// New builds the mailer from SMTP settings. Callers should check
// cfg.Enabled() first and skip construction when mail is not configured.
func New(cfg config.SMTPConfig, brand string, log *logger.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		brand:  brand,
		log:    log,
	}
}

// SendPasswordReset mails the reset link. The link embeds a one-hour token.
func (m *Mailer) SendPasswordReset(to, name, resetURL string) error {
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset the password of your %s account.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link is valid for one hour. If you did not ask for this, ignore this mail.</p>`,
		html.EscapeString(name), m.brand, resetURL,
	)
	return m.send(to, name, m.brand+" password reset", body, "")
}

// SendOrderInvoice mails the order confirmation with the invoice attached.
func (m *Mailer) SendOrderInvoice(to, name string, order *entity.Order, attachment string) error {
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Thank you for your order <b>%s</b>. Your invoice is attached.</p>
<p>Order total: Rs. %s</p>
<p>%s</p>`,
		html.EscapeString(name), order.Number, order.Total.StringFixed(2), m.brand,
	)
	return m.send(to, name, fmt.Sprintf("Your %s order %s", m.brand, order.Number), body, attachment)
}

func (m *Mailer) send(to, name, subject, htmlBody, attachment string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetAddressHeader("To", to, name)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if attachment != "" {
		msg.Attach(attachment)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: send %q to %s: %w", subject, to, err)
	}
	m.log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}
