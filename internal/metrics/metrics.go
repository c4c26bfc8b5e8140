package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FeedbackSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feedback_submitted_total",
		Help: "Feedback items created",
	})
	ResponsesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "responses_created_total",
		Help: "Admin responses attached to feedback",
	})
	ResponsesMarkedRead = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "responses_marked_read_total",
		Help: "Responses marked read by their recipient",
	})
	RequestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "request_errors_total",
		Help: "Requests answered with an error envelope",
	}, []string{"status"})
)

// MustRegister registers all collectors on the given registerer.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		FeedbackSubmitted,
		ResponsesCreated,
		ResponsesMarkedRead,
		RequestErrors,
	)
}
