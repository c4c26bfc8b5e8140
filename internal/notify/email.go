package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// EmailNotifier sends an email to the feedback author through Resend when an
// admin responds. Delivery is best-effort; the response itself is already
// persisted by the time this runs.
type EmailNotifier struct {
	client *resend.Client
	from   string
	log    zerolog.Logger
}

func NewEmailNotifier(apiKey, from string, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

func (n *EmailNotifier) Publish(ctx context.Context, notice ResponseNotice) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{notice.Email},
		Subject: fmt.Sprintf("Your feedback %q has a response", notice.FeedbackTitle),
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Hi %s,</h2>
				<p>An administrator responded to your feedback <strong>%s</strong>:</p>
				<blockquote style="border-left: 3px solid #6366f1; margin: 16px 0; padding: 8px 16px; color: #444;">%s</blockquote>
				<p style="color: #888; font-size: 14px;">Open the map viewer and check your notifications for details.</p>
			</div>
		`, notice.FullName, notice.FeedbackTitle, notice.Content),
	}

	sent, err := n.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("send response email: %w", err)
	}
	n.log.Info().Str("email_id", sent.Id).Str("to", notice.Email).Msg("response notification sent")
	return nil
}
