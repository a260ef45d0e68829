package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"payments-app/config"
	"payments-app/internal/domain/orders"
	"payments-app/internal/domain/site"
	"payments-app/internal/observability"

	"go.uber.org/zap"
)

const sendTimeout = 10 * time.Second

// Mailer sends transactional notifications. Every send is fire-and-forget:
// queued on its own goroutine, bounded by sendTimeout, and failures are
// logged, never surfaced to the HTTP caller and never retried.
type Mailer struct {
	host     string
	port     string
	from     string
	password string
	notifyTo string
	log      *zap.Logger
}

func New(log *zap.Logger) *Mailer {
	return &Mailer{
		host:     config.SMTP_HOST,
		port:     config.SMTP_PORT,
		from:     config.SMTP_FROM,
		password: config.SMTP_PASSWORD,
		notifyTo: config.CONTACT_EMAIL,
		log:      log,
	}
}

// Enabled reports whether SMTP is configured. When false all Send* calls
// are silent no-ops.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.from != ""
}

func (m *Mailer) SendOrderConfirmation(o *orders.Order) {
	m.queue("order_confirmation", o.CustomerEmail,
		"Payment Confirmation",
		fmt.Sprintf("Your payment of %s for %q has been confirmed.\n\nOrder reference: %s",
			formatAmount(o.Amount, o.Currency), o.Service, o.ID))
}

func (m *Mailer) SendOrderFailed(o *orders.Order) {
	reason := "the payment could not be processed"
	if o.ErrorMessage != nil && *o.ErrorMessage != "" {
		reason = *o.ErrorMessage
	}
	m.queue("order_failed", o.CustomerEmail,
		"Payment Failed",
		fmt.Sprintf("Your payment of %s for %q did not go through: %s\n\nOrder reference: %s",
			formatAmount(o.Amount, o.Currency), o.Service, reason, o.ID))
}

func (m *Mailer) SendContactNotification(s *site.ContactSubmission) {
	if m.notifyTo == "" {
		return
	}
	subject := "New Contact Form Submission"
	if s.Subject != nil && *s.Subject != "" {
		subject += ": " + *s.Subject
	}
	body := fmt.Sprintf("From: %s <%s>\n", s.Name, s.Email)
	if s.Phone != nil && *s.Phone != "" {
		body += "Phone: " + *s.Phone + "\n"
	}
	body += "\n" + s.Message + "\n"
	m.queue("contact_notification", m.notifyTo, subject, body)
}

// queue hands the message to a background goroutine and returns
// immediately. A send still running after sendTimeout is abandoned.
func (m *Mailer) queue(kind, to, subject, body string) {
	if !m.Enabled() {
		return
	}

	go func() {
		done := make(chan error, 1)
		go func() { done <- m.send(to, subject, body) }()

		select {
		case err := <-done:
			if err != nil {
				observability.EmailsSent.WithLabelValues(kind, "error").Inc()
				m.log.Error("Failed to send email",
					zap.String("kind", kind), zap.String("to", to), zap.Error(err))
				return
			}
			observability.EmailsSent.WithLabelValues(kind, "ok").Inc()
			m.log.Info("Email sent", zap.String("kind", kind), zap.String("to", to))
		case <-time.After(sendTimeout):
			observability.EmailsSent.WithLabelValues(kind, "timeout").Inc()
			m.log.Error("Email send timed out",
				zap.String("kind", kind), zap.String("to", to))
		}
	}()
}

func (m *Mailer) send(to, subject, body string) error {
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, message)
}

func formatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(amount)/100, strings.ToUpper(currency))
}
