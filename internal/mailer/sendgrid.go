package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type sendgridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
	logger     *slog.Logger
}

var _ Mailer = (*sendgridMailer)(nil)

func NewSendgridMailer(key, appName, fromEmail string, logger *slog.Logger) Mailer {
	return &sendgridMailer{
		key:        key,
		from:       sgmail.NewEmail(appName, fromEmail),
		subjPrefix: "[" + appName + "] ",
		logger:     logger,
	}
}

func (m *sendgridMailer) Send(ctx context.Context, msg Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToAddress))

	mail := sgmail.NewV3Mail()
	mail.SetFrom(m.from)
	mail.AddPersonalizations(p)
	if msg.TextBody != "" {
		mail.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	}
	if msg.HTMLBody != "" {
		mail.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}

	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(mail)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Error("sendgrid rejected message",
			"status_code", res.StatusCode,
			"to", msg.ToAddress)
		return fmt.Errorf("sendgrid rejected message: status %d", res.StatusCode)
	}

	m.logger.Info("email sent", "to", msg.ToAddress, "subject", msg.Subject)
	return nil
}

// ConsoleMailer prints messages instead of delivering them; used in
// development and tests.
type ConsoleMailer struct {
	Logger *slog.Logger
	Sent   []Message
}

func NewConsoleMailer(logger *slog.Logger) *ConsoleMailer {
	return &ConsoleMailer{Logger: logger}
}

func (m *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	m.Sent = append(m.Sent, msg)
	m.Logger.Info("console mailer",
		"to", msg.ToAddress,
		"subject", msg.Subject,
		"body", msg.TextBody)
	return nil
}
