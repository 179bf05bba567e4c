package nudge

import (
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

type ResendNotifier struct {
	APIKey string
	From   string
	Email  string
}

func (r *ResendNotifier) SendNudge(habits []string) error {
	var b strings.Builder
	b.WriteString("<p>These habit streaks lapse soon unless you check off:</p><ul>")
	for _, h := range habits {
		fmt.Fprintf(&b, "<li>%s</li>", h)
	}
	b.WriteString("</ul>")

	client := resend.NewClient(r.APIKey)
	params := &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{r.Email},
		Subject: fmt.Sprintf("cadence: %d habit(s) need a check-off", len(habits)),
		Html:    b.String(),
	}
	_, err := client.Emails.Send(params)
	return err
}

var _ Notifier = (*ResendNotifier)(nil)
