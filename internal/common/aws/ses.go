// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Email is a single outbound message.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// sesAPI is the subset of *ses.Client used here.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESClient struct {
	client    sesAPI
	fromEmail string
}

func NewSESClient(ctx context.Context, region, fromEmail string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESClient{client: ses.NewFromConfig(cfg), fromEmail: fromEmail}, nil
}

// NewSESClientWithAPI builds a client around an existing SES API implementation.
func NewSESClientWithAPI(api sesAPI, fromEmail string) *SESClient {
	return &SESClient{client: api, fromEmail: fromEmail}
}

// SendEmail delivers one message and returns the SES message ID.
func (s *SESClient) SendEmail(ctx context.Context, email Email) (string, error) {
	body := &types.Body{}
	if email.HTMLBody != "" {
		body.Html = &types.Content{Data: awssdk.String(email.HTMLBody), Charset: awssdk.String("UTF-8")}
	}
	if email.TextBody != "" {
		body.Text = &types.Content{Data: awssdk.String(email.TextBody), Charset: awssdk.String("UTF-8")}
	}

	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      awssdk.String(s.fromEmail),
		Destination: &types.Destination{ToAddresses: []string{email.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(email.Subject), Charset: awssdk.String("UTF-8")},
			Body:    body,
		},
	})
	if err != nil {
		return "", fmt.Errorf("ses send email: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}
