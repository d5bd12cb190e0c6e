package mailer

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer delivers through AWS SES v2.
type SESMailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
}

// NewSESMailerFromEnv builds the SES transport from AWS_REGION,
// SES_FROM_EMAIL, SES_FROM_NAME and, when set, AWS_ACCESS_KEY_ID /
// AWS_SECRET_ACCESS_KEY static credentials.
func NewSESMailerFromEnv(ctx context.Context) (*SESMailer, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(os.Getenv("AWS_REGION")),
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SESMailer{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: os.Getenv("SES_FROM_EMAIL"),
		fromName:  os.Getenv("SES_FROM_NAME"),
	}, nil
}

func (m *SESMailer) Deliver(ctx context.Context, toAddress, toName, subject, htmlBody string) error {
	to := toAddress
	if toName != "" {
		to = fmt.Sprintf("%s <%s>", toName, toAddress)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("sending email to %s: %w", toAddress, err)
	}
	return nil
}

var _ Mailer = (*SESMailer)(nil)
