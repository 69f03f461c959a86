package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"collabnote-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendInvitation(toEmail, inviterEmail, noteTitle, noteURL string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	logger      logger.ILogger
}

// NewEmailService returns a no-op sender when host is empty.
func NewEmailService(host string, port int, username, password, senderEmail string, log logger.ILogger) IEmailService {
	if host == "" {
		return &noopEmailService{logger: log}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		logger:      log,
	}
}

func (s *emailService) SendInvitation(toEmail, inviterEmail, noteTitle, noteURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s shared \"%s\" with you", inviterEmail, noteTitle))
	body, err := invitationBody(inviterEmail, noteTitle, noteURL)
	if err != nil {
		return err
	}
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send invitation", map[string]interface{}{
			"to":    toEmail,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Invitation sent", map[string]interface{}{"to": toEmail})
	return nil
}

var invitationTemplate = template.Must(template.New("invitation").Parse(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>You have been invited to collaborate</h2>
			<p><b>{{.Inviter}}</b> invited you to edit <b>{{.Title}}</b>.</p>
			<a href="{{.URL}}" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open note</a>
			<p>Or copy this link:</p>
			<p>{{.URL}}</p>
		</div>
`))

// invitationBody renders the mail; title and inviter are user input and get
// escaped by the template.
func invitationBody(inviterEmail, noteTitle, noteURL string) (string, error) {
	var buf bytes.Buffer
	err := invitationTemplate.Execute(&buf, struct {
		Inviter, Title, URL string
	}{inviterEmail, noteTitle, noteURL})
	if err != nil {
		return "", fmt.Errorf("render invitation: %w", err)
	}
	return buf.String(), nil
}

type noopEmailService struct {
	logger logger.ILogger
}

func (s *noopEmailService) SendInvitation(toEmail, inviterEmail, noteTitle, noteURL string) error {
	s.logger.Debug("MAILER", "SMTP disabled, invitation not sent", map[string]interface{}{"to": toEmail})
	return nil
}
