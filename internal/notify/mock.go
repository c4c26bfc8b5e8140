package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier implements Notifier by logging the notice. Used when no
// RESEND_API_KEY is configured, e.g. local dev.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Publish(ctx context.Context, notice ResponseNotice) error {
	n.log.Info().
		Str("to", notice.Email).
		Str("feedback", notice.FeedbackTitle).
		Msg("[dev] response notification (email delivery disabled)")
	return nil
}
