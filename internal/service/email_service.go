package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESEmailSender delivers transactional email through Amazon SES
type SESEmailSender struct {
	client   *sesv2.Client
	from     string
	fromName string
}

// NewSESEmailSender creates a sender using the default AWS credential chain
func NewSESEmailSender(ctx context.Context, region, from, fromName string) (*SESEmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &SESEmailSender{
		client:   sesv2.NewFromConfig(cfg),
		from:     from,
		fromName: fromName,
	}, nil
}

// SendPasswordReset emails a password reset link
func (s *SESEmailSender) SendPasswordReset(ctx context.Context, to, username, link string) error {
	subject := "Reset your ScamSavvy password"
	textBody := fmt.Sprintf(
		"Hi %s,\n\nSomeone asked to reset the password for your ScamSavvy account. "+
			"If that was you, open the link below within the next hour:\n\n%s\n\n"+
			"If you didn't ask for this, you can ignore this email.\n",
		username, link,
	)
	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Someone asked to reset the password for your ScamSavvy account. "+
			"If that was you, open the link below within the next hour:</p>"+
			"<p><a href=%q>Reset your password</a></p>"+
			"<p>If you didn't ask for this, you can ignore this email.</p>",
		username, link,
	)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.from)),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(textBody)},
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email via ses: %w", err)
	}
	return nil
}
