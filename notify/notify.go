// Package notify delivers run summaries to mail and Teams transports.
package notify

import (
	"fmt"

	"github.com/testpilot-dev/testpilot/types"
)

// Message is the rendered notification payload shared by all transports.
type Message struct {
	Subject string
	Body    string
}

// BuildMessage renders the notification for a result model, with an
// optional link to the published results.
func BuildMessage(model *types.ResultModel, resultsLink string) Message {
	status := "passed"
	if model.HasFailures() {
		status = "failed"
	}

	body := fmt.Sprintf("<p><strong>Test run %s.</strong></p><p>%s (total: %d)</p>",
		status, model.Summary(), model.Total)
	if resultsLink != "" {
		body += fmt.Sprintf(`<p><a href=%q>View full results</a></p>`, resultsLink)
	}

	return Message{
		Subject: fmt.Sprintf("Test run %s — %s", status, model.Summary()),
		Body:    body,
	}
}
