package fannotifysubscription

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/common/validation"
	"fanclub/internal/models"
	"fanclub/internal/notify"
	"fanclub/internal/store/storetest"
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

func createTestHandler(t *testing.T, sesSvc *MockSESService, snsSvc *MockSNSService) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	n := notify.New(notify.Config{
		EmailEnabled:  true,
		FromEmail:     "fans@fanclub.example.com",
		EventsEnabled: true,
		TopicARN:      "arn:aws:sns:us-east-1:123456789012:fanclub-events",
	}, sesSvc, snsSvc, log)
	return NewHandler(DefaultConfig(), storetest.New(t), n, log)
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_FromSubscriptionVariable(t *testing.T) {
	sesSvc, snsSvc := new(MockSESService), new(MockSNSService)
	sesSvc.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return in.Destination.ToAddresses[0] == "alex.rivera@example.com"
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil)
	snsSvc.On("Publish", mock.Anything, mock.Anything).Return(&sns.PublishOutput{MessageId: aws.String("sns-1")}, nil)

	h := createTestHandler(t, sesSvc, snsSvc)
	out, err := h.Execute(context.Background(), &Input{
		EventType: models.EventSubscribed,
		Subscription: &models.FanSubscription{
			UserID: "user-1", ArtistID: "artist-1", TierID: "tier-luna-insider",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, notify.StatusSent, out.Notification.EmailStatus)
	assert.Equal(t, notify.StatusSent, out.Notification.EventStatus)
	assert.Equal(t, "sns-1", out.Notification.MessageID)

	result, err := validation.ValidateStruct(out, GetOutputSchema())
	require.NoError(t, err)
	assert.True(t, result.Valid, result.GetErrorMessages())

	sesSvc.AssertExpectations(t)
	snsSvc.AssertExpectations(t)
}

func TestHandler_BuildEvent(t *testing.T) {
	h := createTestHandler(t, new(MockSESService), new(MockSNSService))

	event, err := h.buildEvent(&Input{
		EventType:    models.EventTierChanged,
		Subscription: &models.FanSubscription{UserID: "user-1", ArtistID: "artist-1", TierID: "tier-luna-insider"},
		TierID:       "tier-luna-inner-circle",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex Rivera", event.UserName)
	assert.Equal(t, "Luna Vega", event.ArtistName)
	assert.Equal(t, "tier-luna-inner-circle", event.TierID, "explicit tierId wins")
	assert.Equal(t, 24.99, event.Price)

	event, err = h.buildEvent(&Input{EventType: models.EventCanceled, UserID: "user-1", ArtistID: "artist-2", TierID: "tier-gone"})
	require.NoError(t, err, "cancellation notices survive a deleted tier")
	assert.Empty(t, event.TierName)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := createTestHandler(t, new(MockSESService), new(MockSNSService))

	tests := []struct {
		name  string
		input Input
		code  errors.ErrorCode
	}{
		{"no ids", Input{EventType: models.EventSubscribed}, errors.ErrCodeValidationFailed},
		{"unknown user", Input{EventType: models.EventSubscribed, UserID: "user-99", ArtistID: "artist-1"}, errors.ErrCodeUserNotFound},
		{"unknown artist", Input{EventType: models.EventSubscribed, UserID: "user-1", ArtistID: "artist-99"}, errors.ErrCodeArtistNotFound},
		{"unknown tier", Input{EventType: models.EventSubscribed, UserID: "user-1", ArtistID: "artist-1", TierID: "tier-gone"}, errors.ErrCodeTierNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestHandler_Execute_DeliveryFailureIsRetryable(t *testing.T) {
	sesSvc, snsSvc := new(MockSESService), new(MockSNSService)
	sesSvc.On("SendEmail", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	snsSvc.On("Publish", mock.Anything, mock.Anything).Return(&sns.PublishOutput{MessageId: aws.String("sns-2")}, nil)

	h := createTestHandler(t, sesSvc, snsSvc)
	_, err := h.Execute(context.Background(), &Input{EventType: models.EventCanceled, UserID: "user-1", ArtistID: "artist-1"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, errors.CodeOf(err))
	assert.Equal(t, 3, errors.ConvertToBPMNError(errors.Normalize(err)).Retries)
}
