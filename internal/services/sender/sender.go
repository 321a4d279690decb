// Package sender отправляет почтовые уведомления по событиям из
// очереди приглашений.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	smtplib "github.com/magabrotheeeer/notes-saas/internal/lib/smtp"
)

// InviteMessage — тело события приглашения из очереди.
type InviteMessage struct {
	Email      string `json:"email"`
	TenantSlug string `json:"tenant_slug"`
	Inviter    string `json:"inviter"`
}

// Service читает события приглашений и отправляет письма.
type Service struct {
	transport smtplib.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport smtplib.TransportInterface) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendInviteNotification разбирает событие приглашения и отправляет
// приветственное письмо новому пользователю.
func (s *Service) SendInviteNotification(body []byte) error {
	var message InviteMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := fmt.Sprintf("You have been invited to %s on Notes", message.TenantSlug)
	bodyText := fmt.Sprintf("Hello!\n\n%s invited you to the %s workspace on Notes.\n\nSign in with this email address and the password you were given, then change it right away.",
		message.Inviter, message.TenantSlug)

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
