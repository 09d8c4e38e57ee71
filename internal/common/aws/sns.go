// internal/common/aws/sns.go
package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the subset of the SNS client used for review alerts.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes to a single topic.
type SNSClient struct {
	api      SNSAPI
	topicARN string
}

func NewSNSClient(api SNSAPI, topicARN string) *SNSClient {
	return &SNSClient{api: api, topicARN: topicARN}
}

// NewSNSFromConfig builds an SNSClient on the SDK client for cfg.
func NewSNSFromConfig(cfg sdkaws.Config, topicARN string) *SNSClient {
	return NewSNSClient(sns.NewFromConfig(cfg), topicARN)
}

// Publish sends message to the topic. attrs become String message
// attributes so subscribers can filter on them.
func (s *SNSClient) Publish(ctx context.Context, subject, message string, attrs map[string]string) (string, error) {
	if s.topicARN == "" {
		return "", fmt.Errorf("sns: topic ARN not configured")
	}
	input := &sns.PublishInput{
		TopicArn: sdkaws.String(s.topicARN),
		Message:  sdkaws.String(message),
	}
	if subject != "" {
		input.Subject = sdkaws.String(subject)
	}
	if len(attrs) > 0 {
		input.MessageAttributes = make(map[string]types.MessageAttributeValue, len(attrs))
		for k, v := range attrs {
			input.MessageAttributes[k] = types.MessageAttributeValue{
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(v),
			}
		}
	}

	out, err := s.api.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return sdkaws.ToString(out.MessageId), nil
}
