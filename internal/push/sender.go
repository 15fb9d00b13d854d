// Package push delivers notifications to user devices through Firebase Cloud
// Messaging. The Sender interface isolates the FCM transport so dispatch logic
// can be exercised without Google credentials.
package push

import "context"

// Notification is the provider-independent payload for a push message.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// SendResult reports the delivery outcome for a single device token.
type SendResult struct {
	Token   string
	Success bool
	// Invalid marks tokens the provider rejected as permanently dead
	// (unregistered device, rotated token). These should be removed.
	Invalid bool
	Err     error
}

// Sender sends one notification to a batch of device tokens.
type Sender interface {
	Send(ctx context.Context, tokens []string, n Notification) ([]SendResult, error)
	Enabled() bool
}
