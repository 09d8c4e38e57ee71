package aws

import (
	"context"
	"errors"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	mock.Mock
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ses.SendEmailOutput)
	return out, args.Error(1)
}

type mockSNS struct {
	mock.Mock
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

func TestSESClient_SendText(t *testing.T) {
	api := new(mockSES)
	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return sdkaws.ToString(in.Source) == "triage@example.com" &&
			assert.ObjectsAreEqual([]string{"desk@example.com"}, in.Destination.ToAddresses) &&
			sdkaws.ToString(in.Message.Subject.Data) == "Manual review" &&
			sdkaws.ToString(in.Message.Body.Text.Data) == "body"
	})).Return(&ses.SendEmailOutput{MessageId: sdkaws.String("msg-1")}, nil)

	id, err := NewSESClient(api, "triage@example.com").
		SendText(context.Background(), []string{"desk@example.com"}, "Manual review", "body")

	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	api.AssertExpectations(t)
}

func TestSESClient_SendTextErrors(t *testing.T) {
	api := new(mockSES)
	client := NewSESClient(api, "triage@example.com")

	_, err := client.SendText(context.Background(), nil, "s", "b")
	assert.Error(t, err)

	api.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))
	_, err = client.SendText(context.Background(), []string{"desk@example.com"}, "s", "b")
	assert.ErrorContains(t, err, "throttled")
}

func TestSNSClient_Publish(t *testing.T) {
	api := new(mockSNS)
	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		attr, ok := in.MessageAttributes["status"]
		return sdkaws.ToString(in.TopicArn) == "arn:aws:sns:ap-northeast-2:1:review" &&
			sdkaws.ToString(in.Subject) == "Manual review" &&
			ok && sdkaws.ToString(attr.DataType) == "String" &&
			sdkaws.ToString(attr.StringValue) == "follow_up"
	})).Return(&sns.PublishOutput{MessageId: sdkaws.String("sns-1")}, nil)

	id, err := NewSNSClient(api, "arn:aws:sns:ap-northeast-2:1:review").
		Publish(context.Background(), "Manual review", "{}", map[string]string{"status": "follow_up"})

	require.NoError(t, err)
	assert.Equal(t, "sns-1", id)
	api.AssertExpectations(t)
}

func TestSNSClient_PublishWithoutTopic(t *testing.T) {
	api := new(mockSNS)

	_, err := NewSNSClient(api, "").Publish(context.Background(), "", "{}", nil)

	assert.Error(t, err)
	api.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
