package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/config"
)

type EmailService interface {
	SendPasswordReset(ctx context.Context, to, firstName, resetLink string) error
}

type sesEmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	logger    zerolog.Logger
}

// NewEmailService builds an SES-backed sender. Without a configured from
// address it degrades to a logger-only sender, which keeps local setups
// working without AWS credentials.
func NewEmailService(ctx context.Context, cfg config.EmailConfig, logger zerolog.Logger) (EmailService, error) {
	if cfg.FromEmail == "" {
		logger.Warn().Msg("Email sending disabled, reset links will only be logged")
		return &logEmailService{logger: logger}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &sesEmailService{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}, nil
}

func (s *sesEmailService) SendPasswordReset(ctx context.Context, to, firstName, resetLink string) error {
	subject := "Reset your password"
	htmlBody := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in one hour.</p>
<p><a href="%s">Reset password</a></p>
<p>If you did not request this, you can safely ignore this email.</p>`,
		firstName, resetLink)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Open the link below to choose a new one. The link expires in one hour.\n\n%s\n\nIf you did not request this, you can safely ignore this email.\n",
		firstName, resetLink)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug().Str("to", to).Msg("Password reset email dispatched")
	return nil
}

type logEmailService struct {
	logger zerolog.Logger
}

func (s *logEmailService) SendPasswordReset(ctx context.Context, to, firstName, resetLink string) error {
	s.logger.Info().
		Str("to", to).
		Str("reset_link", resetLink).
		Msg("Email sending disabled, logging reset link instead")
	return nil
}
