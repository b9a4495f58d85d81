// Package push delivers notifications to mobile devices through Firebase
// Cloud Messaging.
package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"invare-backend/internal/logger"
)

// FCMSender implements service.PushSender on top of the Firebase Admin SDK.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender initializes the Firebase app from a service-account
// credentials file and returns a ready sender.
func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("firebase credentials file is required")
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Messaging client: %w", err)
	}
	return &FCMSender{client: client}, nil
}

// Send pushes the notification to every token and reports the tokens FCM no
// longer recognizes so the caller can prune them.
func (s *FCMSender) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	logger.ExternalServiceCall("fcm", "send_multicast", "tokens", len(tokens))
	resp, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("fcm", "send_multicast", err)
		return nil, fmt.Errorf("failed to send push: %w", err)
	}
	logger.ExternalServiceResult("fcm", "send_multicast", nil,
		"success", resp.SuccessCount, "failure", resp.FailureCount)

	var invalid []string
	for i, r := range resp.Responses {
		if r.Error == nil {
			continue
		}
		if messaging.IsUnregistered(r.Error) || messaging.IsInvalidArgument(r.Error) {
			invalid = append(invalid, tokens[i])
		}
	}
	return invalid, nil
}
