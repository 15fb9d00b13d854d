package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMSender sends notifications through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender initializes the Firebase app from a service-account credentials
// file. An empty path returns a disabled sender rather than an error so the
// API can run without push configured.
func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	if credentialsFile == "" {
		return &FCMSender{}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing fcm client: %w", err)
	}
	return &FCMSender{client: client}, nil
}

func (s *FCMSender) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *FCMSender) Send(ctx context.Context, tokens []string, n Notification) ([]SendResult, error) {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
	}

	resp, err := s.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("sending multicast: %w", err)
	}

	results := make([]SendResult, len(resp.Responses))
	for i, r := range resp.Responses {
		results[i] = SendResult{
			Token:   tokens[i],
			Success: r.Success,
			Err:     r.Error,
		}
		if r.Error != nil && messaging.IsUnregistered(r.Error) {
			results[i].Invalid = true
		}
	}
	return results, nil
}
