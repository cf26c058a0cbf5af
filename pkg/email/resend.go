package email

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
	logger       *zap.Logger
}

func NewEmailService(apiKey string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:       resend.NewClient(apiKey),
		from:         os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName:     os.Getenv("EMAIL_FROM_NAME"),
		templatesDir: "pkg/email/templates",
		logger:       logger,
	}
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	templateData := map[string]interface{}{
		"Name":  name,
		"Email": email,
		"Year":  time.Now().Year(),
	}

	html, err := s.parseTemplate("welcome.html", templateData)
	if err != nil {
		s.logger.Error("failed to parse welcome template",
			zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to FeastFinder!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send welcome email",
			zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("sent welcome email",
		zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesDir, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
