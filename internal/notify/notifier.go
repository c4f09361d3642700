// Package notify tells fans about subscription changes by email (SES) and
// publishes the same events to an SNS topic for downstream consumers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
)

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
	StatusSkipped  = "skipped"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Config struct {
	EmailEnabled  bool
	FromEmail     string
	EventsEnabled bool
	TopicARN      string
}

type Result struct {
	NotificationID string `json:"notificationId"`
	EmailStatus    string `json:"emailStatus"`
	EventStatus    string `json:"eventStatus"`
	MessageID      string `json:"messageId,omitempty"`
	SentAt         string `json:"sentAt"`
}

type Notifier struct {
	config Config
	ses    SESService
	sns    SNSService
	logger logger.Logger
	now    func() time.Time
}

func New(cfg Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Notifier {
	return &Notifier{
		config: cfg,
		ses:    sesClient,
		sns:    snsClient,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
		now:    time.Now,
	}
}

// Notify emails the fan (when an address is known) and publishes the event.
// A failing channel yields a NOTIFICATION_SEND_FAILED error alongside the
// partial result.
func (n *Notifier) Notify(ctx context.Context, event models.SubscriptionEvent) (*Result, error) {
	if !event.Type.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown event type %q", event.Type))
	}
	if event.OccurredAt == "" {
		event.OccurredAt = n.now().UTC().Format(time.RFC3339)
	}

	res := &Result{
		NotificationID: uuid.New().String(),
		EmailStatus:    StatusDisabled,
		EventStatus:    StatusDisabled,
		SentAt:         n.now().UTC().Format(time.RFC3339),
	}

	var failed error
	if n.config.EmailEnabled && n.ses != nil {
		if event.UserEmail == "" {
			res.EmailStatus = StatusSkipped
		} else if err := n.sendEmail(ctx, event); err != nil {
			n.logger.Error("email send failed", map[string]interface{}{
				"error":    err,
				"userId":   event.UserID,
				"artistId": event.ArtistID,
			})
			res.EmailStatus = StatusFailed
			failed = errors.NewNotificationSendFailedError("email", err)
		} else {
			res.EmailStatus = StatusSent
		}
	}

	if n.config.EventsEnabled && n.sns != nil {
		msgID, err := n.publish(ctx, event)
		if err != nil {
			n.logger.Error("event publish failed", map[string]interface{}{
				"error":    err,
				"topicArn": n.config.TopicARN,
			})
			res.EventStatus = StatusFailed
			if failed == nil {
				failed = errors.NewNotificationSendFailedError("sns", err)
			}
		} else {
			res.EventStatus = StatusSent
			res.MessageID = msgID
		}
	}

	if failed != nil {
		return res, failed
	}
	n.logger.Info("subscription event delivered", map[string]interface{}{
		"type":        string(event.Type),
		"emailStatus": res.EmailStatus,
		"eventStatus": res.EventStatus,
	})
	return res, nil
}

func (n *Notifier) sendEmail(ctx context.Context, event models.SubscriptionEvent) error {
	subject, body := renderEmail(event)
	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{event.UserEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.config.FromEmail),
	})
	return err
}

func (n *Notifier) publish(ctx context.Context, event models.SubscriptionEvent) (string, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	out, err := n.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.config.TopicARN),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"eventType": {DataType: aws.String("String"), StringValue: aws.String(string(event.Type))},
			"artistId":  {DataType: aws.String("String"), StringValue: aws.String(event.ArtistID)},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func renderEmail(e models.SubscriptionEvent) (subject, body string) {
	greeting := "Hi"
	if e.UserName != "" {
		greeting = "Hi " + e.UserName
	}
	artist := e.ArtistName
	if artist == "" {
		artist = e.ArtistID
	}
	tier := e.TierName
	if tier == "" {
		tier = e.TierID
	}

	switch e.Type {
	case models.EventSubscribed:
		subject = fmt.Sprintf("You're subscribed to %s", artist)
		body = fmt.Sprintf("%s,\n\nWelcome to %s's %s tier ($%.2f/month). Your exclusive content is unlocked now.", greeting, artist, tier, e.Price)
	case models.EventTierChanged:
		subject = fmt.Sprintf("Your %s subscription changed", artist)
		body = fmt.Sprintf("%s,\n\nYou're now on the %s tier ($%.2f/month) for %s.", greeting, tier, e.Price, artist)
	default:
		subject = fmt.Sprintf("Your %s subscription was canceled", artist)
		body = fmt.Sprintf("%s,\n\nYour subscription to %s has been canceled. You can resubscribe at any time.", greeting, artist)
	}
	return subject, body
}
