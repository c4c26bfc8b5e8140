package notify

import "context"

// ResponseNotice carries what the feedback author needs to hear about an
// admin response.
type ResponseNotice struct {
	Email         string
	FullName      string
	FeedbackTitle string
	Content       string
}

// Notifier delivers response notices out of band. This abstraction allows
// swapping the log-only notifier with real email delivery without refactoring.
type Notifier interface {
	Publish(ctx context.Context, notice ResponseNotice) error
}
