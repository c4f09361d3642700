package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	mock.Mock
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ses.SendEmailOutput)
	return out, args.Error(1)
}

type MockSNSService struct {
	mock.Mock
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() Config {
	return Config{
		EmailEnabled:  true,
		FromEmail:     "fans@fanclub.example.com",
		EventsEnabled: true,
		TopicARN:      "arn:aws:sns:us-east-1:123456789012:fanclub-events",
	}
}

func createEvent(typ models.SubscriptionEventType) models.SubscriptionEvent {
	return models.SubscriptionEvent{
		Type:       typ,
		UserID:     "user-1",
		UserName:   "Alex Rivera",
		UserEmail:  "alex.rivera@example.com",
		ArtistID:   "artist-1",
		ArtistName: "Luna Vega",
		TierID:     "tier-luna-insider",
		TierName:   "Insider",
		Price:      9.99,
		OccurredAt: "2025-03-25T10:00:00Z",
	}
}

func createTestNotifier(t *testing.T, cfg Config, sesSvc SESService, snsSvc SNSService) *Notifier {
	n := New(cfg, sesSvc, snsSvc, logger.NewTestLogger(t))
	n.now = func() time.Time { return time.Date(2025, 3, 25, 10, 0, 0, 0, time.UTC) }
	return n
}

// ==========================
// Core Functionality Tests
// ==========================

func TestNotifier_Notify_Success(t *testing.T) {
	sesSvc := &MockSESService{}
	snsSvc := &MockSNSService{}

	sesSvc.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return in.Destination.ToAddresses[0] == "alex.rivera@example.com" &&
			aws.ToString(in.Source) == "fans@fanclub.example.com" &&
			aws.ToString(in.Message.Subject.Data) == "You're subscribed to Luna Vega"
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil)

	snsSvc.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		var got models.SubscriptionEvent
		if err := json.Unmarshal([]byte(aws.ToString(in.Message)), &got); err != nil {
			return false
		}
		return got.Type == models.EventSubscribed &&
			aws.ToString(in.MessageAttributes["eventType"].StringValue) == "subscribed"
	})).Return(&sns.PublishOutput{MessageId: aws.String("sns-1")}, nil)

	n := createTestNotifier(t, createTestConfig(), sesSvc, snsSvc)
	res, err := n.Notify(context.Background(), createEvent(models.EventSubscribed))
	require.NoError(t, err)

	assert.Equal(t, StatusSent, res.EmailStatus)
	assert.Equal(t, StatusSent, res.EventStatus)
	assert.Equal(t, "sns-1", res.MessageID)
	assert.Equal(t, "2025-03-25T10:00:00Z", res.SentAt)
	assert.NotEmpty(t, res.NotificationID)

	sesSvc.AssertExpectations(t)
	snsSvc.AssertExpectations(t)
}

func TestNotifier_Notify_ChannelsDisabled(t *testing.T) {
	sesSvc := &MockSESService{}
	snsSvc := &MockSNSService{}

	n := createTestNotifier(t, Config{}, sesSvc, snsSvc)
	res, err := n.Notify(context.Background(), createEvent(models.EventCanceled))
	require.NoError(t, err)

	assert.Equal(t, StatusDisabled, res.EmailStatus)
	assert.Equal(t, StatusDisabled, res.EventStatus)
	sesSvc.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	snsSvc.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestNotifier_Notify_NoEmailAddress(t *testing.T) {
	snsSvc := &MockSNSService{}
	snsSvc.On("Publish", mock.Anything, mock.Anything).Return(&sns.PublishOutput{MessageId: aws.String("sns-2")}, nil)

	event := createEvent(models.EventTierChanged)
	event.UserEmail = ""

	n := createTestNotifier(t, createTestConfig(), &MockSESService{}, snsSvc)
	res, err := n.Notify(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.EmailStatus)
	assert.Equal(t, StatusSent, res.EventStatus)
}

// ==========================
// Error Handling Tests
// ==========================

func TestNotifier_Notify_EmailFailure(t *testing.T) {
	sesSvc := &MockSESService{}
	snsSvc := &MockSNSService{}
	sesSvc.On("SendEmail", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	snsSvc.On("Publish", mock.Anything, mock.Anything).Return(&sns.PublishOutput{MessageId: aws.String("sns-3")}, nil)

	n := createTestNotifier(t, createTestConfig(), sesSvc, snsSvc)
	res, err := n.Notify(context.Background(), createEvent(models.EventSubscribed))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotificationSendFailed))
	require.NotNil(t, res)
	assert.Equal(t, StatusFailed, res.EmailStatus)
	assert.Equal(t, StatusSent, res.EventStatus, "other channel still delivers")
}

func TestNotifier_Notify_PublishFailure(t *testing.T) {
	snsSvc := &MockSNSService{}
	snsSvc.On("Publish", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	cfg := createTestConfig()
	cfg.EmailEnabled = false
	n := createTestNotifier(t, cfg, nil, snsSvc)
	res, err := n.Notify(context.Background(), createEvent(models.EventCanceled))

	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.EventStatus)
	assert.True(t, errors.Normalize(err).Retryable)
}

func TestNotifier_Notify_InvalidType(t *testing.T) {
	n := createTestNotifier(t, createTestConfig(), nil, nil)
	_, err := n.Notify(context.Background(), createEvent("refunded"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
}

func TestRenderEmail(t *testing.T) {
	subject, body := renderEmail(createEvent(models.EventTierChanged))
	assert.Equal(t, "Your Luna Vega subscription changed", subject)
	assert.Contains(t, body, "Insider tier ($9.99/month)")

	subject, body = renderEmail(models.SubscriptionEvent{Type: models.EventCanceled, ArtistID: "artist-9"})
	assert.Equal(t, "Your artist-9 subscription was canceled", subject)
	assert.Contains(t, body, "Hi,")
}
