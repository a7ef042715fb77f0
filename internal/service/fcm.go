package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"samedayramps-backend/internal/logger"
)

// fcmNotifier publishes operator notifications to an FCM topic that the
// back-office mobile app subscribes to.
type fcmNotifier struct {
	client *messaging.Client
	topic  string
}

func NewFCMNotifier(ctx context.Context, credentialsFile, topic string) (Notifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fcm client: %w", err)
	}
	return &fcmNotifier{client: client, topic: topic}, nil
}

func (n *fcmNotifier) Notify(ctx context.Context, title, message string) error {
	msg := &messaging.Message{
		Topic: n.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  message,
		},
	}
	logger.ExternalServiceCall("fcm", "send", "topic", n.topic, "title", title)
	id, err := n.client.Send(ctx, msg)
	if err != nil {
		logger.ExternalServiceResult("fcm", "send", err)
		return fmt.Errorf("failed to send fcm message: %w", err)
	}
	logger.ExternalServiceResult("fcm", "send", nil, "message_id", id)
	return nil
}
