package protocol

import "context"

// Email is one outbound message handed to the mail collaborator.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mailer is the external mail-sending collaborator. Transport errors
// surface as action failures.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// Notification is an in-app notification payload.
type Notification struct {
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Notifier delivers in-app notifications. Delivery is best-effort; the
// engine does not retry.
type Notifier interface {
	NotifyUser(ctx context.Context, userID string, notification Notification) error
}
