// Package mail sends transactional email through AWS SES. When mail is
// disabled (local development), messages are logged instead of sent.
package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"meridian/internal/logger"
)

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SESSender sends email through AWS SES.
type SESSender struct {
	client *ses.Client
	from   string
}

// NewSESSender builds a sender using the default AWS credential chain.
func NewSESSender(ctx context.Context, region, from string) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESSender{client: ses.NewFromConfig(cfg), from: from}, nil
}

// Send delivers one email with both HTML and plain-text parts.
func (s *SESSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
				Text: &types.Content{Data: aws.String(textBody)},
			},
		},
	}
	_, err := s.client.SendEmail(ctx, input)
	return err
}

// LogSender logs messages instead of delivering them. Used whenever
// MAIL_ENABLED is false so local flows work without AWS credentials.
type LogSender struct{}

// Send logs the message and succeeds.
func (LogSender) Send(_ context.Context, to, subject, _, textBody string) error {
	logger.Get().Infow("mail suppressed (MAIL_ENABLED=false)",
		"to", to,
		"subject", subject,
		"body", textBody,
	)
	return nil
}
