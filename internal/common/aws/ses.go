// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used for review mail.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESClient sends plain-text mail from a fixed sender address.
type SESClient struct {
	api  SESAPI
	from string
}

func NewSESClient(api SESAPI, from string) *SESClient {
	return &SESClient{api: api, from: from}
}

// NewSESFromConfig builds an SESClient on the SDK client for cfg.
func NewSESFromConfig(cfg sdkaws.Config, from string) *SESClient {
	return NewSESClient(ses.NewFromConfig(cfg), from)
}

// SendText mails subject and body to every address in to and returns the
// SES message ID.
func (s *SESClient) SendText(ctx context.Context, to []string, subject, body string) (string, error) {
	if len(to) == 0 {
		return "", fmt.Errorf("ses: no recipients")
	}
	out, err := s.api.SendEmail(ctx, &ses.SendEmailInput{
		Source:      sdkaws.String(s.from),
		Destination: &types.Destination{ToAddresses: to},
		Message: &types.Message{
			Subject: &types.Content{Data: sdkaws.String(subject), Charset: sdkaws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: sdkaws.String(body), Charset: sdkaws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ses send: %w", err)
	}
	return sdkaws.ToString(out.MessageId), nil
}
