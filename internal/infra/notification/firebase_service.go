// Package notification sends push notifications to field agents' devices.
package notification

import (
	"context"

	"fieldops/internal/domain/service"
	"fieldops/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// MaxMulticastTokens is the FCM limit for a single multicast request.
const MaxMulticastTokens = 500

type fcmPushService struct {
	client *messaging.Client
}

// NewFirebaseService creates a push service backed by Firebase Cloud Messaging
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.PushService, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &fcmPushService{
		client: client,
	}, nil
}

// SendSingleNotification sends a push notification to a single device token
func (s *fcmPushService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android:      androidConfig(),
		APNS:         apnsConfig(),
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return errors.Wrap(err, "failed to send notification")
	}

	return nil
}

// SendBatchNotification sends one multicast to at most MaxMulticastTokens tokens.
// Tokens FCM reports as invalid or unregistered are returned for deactivation.
func (s *fcmPushService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error) {
	if len(tokens) == 0 {
		return 0, 0, nil, nil
	}

	if len(tokens) > MaxMulticastTokens {
		return 0, 0, nil, errors.Errorf("token count exceeds limit: %d (max %d)", len(tokens), MaxMulticastTokens)
	}

	response, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android:      androidConfig(),
		APNS:         apnsConfig(),
	})
	if err != nil {
		return 0, 0, nil, errors.Wrap(err, "failed to send multicast notification")
	}

	invalidTokens = make([]string, 0)
	for idx, sendResponse := range response.Responses {
		if isStaleToken(sendResponse.Error) {
			invalidTokens = append(invalidTokens, tokens[idx])
		}
	}

	return response.SuccessCount, response.FailureCount, invalidTokens, nil
}

func isStaleToken(err error) bool {
	return err != nil && (messaging.IsInvalidArgument(err) || messaging.IsUnregistered(err))
}

// Discount outcomes are time sensitive for an agent standing in front of a client.
func androidConfig() *messaging.AndroidConfig {
	return &messaging.AndroidConfig{Priority: "high"}
}

func apnsConfig() *messaging.APNSConfig {
	return &messaging.APNSConfig{
		Headers: map[string]string{"apns-priority": "10"},
	}
}
