package service

import (
	"context"
	"fmt"

	"github.com/gregdel/pushover"

	"samedayramps-backend/internal/logger"
)

type pushoverNotifier struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
}

func NewPushoverNotifier(token, userKey string) Notifier {
	return &pushoverNotifier{
		app:       pushover.New(token),
		recipient: pushover.NewRecipient(userKey),
	}
}

func (n *pushoverNotifier) Notify(ctx context.Context, title, message string) error {
	msg := pushover.NewMessageWithTitle(message, title)
	logger.ExternalServiceCall("pushover", "send_message", "title", title)
	_, err := n.app.SendMessage(msg, n.recipient)
	if err != nil {
		logger.ExternalServiceResult("pushover", "send_message", err)
		return fmt.Errorf("failed to send pushover message: %w", err)
	}
	logger.ExternalServiceResult("pushover", "send_message", nil)
	return nil
}

// noopNotifier satisfies Notifier when no push provider is configured.
type noopNotifier struct{}

func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) Notify(ctx context.Context, title, message string) error {
	logger.Debug("Push notifications disabled, dropping message", "title", title)
	return nil
}
