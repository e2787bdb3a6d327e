package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fastbreak/internal/adapters/email"
	"fastbreak/internal/domain/outbox"
)

// OutboxSaver persists outbox entries.
type OutboxSaver interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// emailPayload is the replayable outbox payload for a queued email.
type emailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"replyTo,omitempty"`
}

// WelcomeEmailInput carries input for the orchestrator.
type WelcomeEmailInput struct {
	To   string
	Name string
	Role string
}

// WelcomeEmailDeps holds dependencies for WelcomeEmail.
type WelcomeEmailDeps struct {
	OutboxStore OutboxSaver
	Sender      email.Sender
	ReplyTo     string
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteWelcomeEmail records a welcome email in the outbox and
// attempts an immediate send. The send is best effort: a failure
// leaves the entry retryable for the background worker and is never
// surfaced to the caller's primary flow.
// PRE: input.To is a valid email address
// POST: An outbox entry exists; status done on immediate success,
// pending/retrying otherwise
func ExecuteWelcomeEmail(ctx context.Context, input WelcomeEmailInput, deps WelcomeEmailDeps) {
	payload, err := json.Marshal(emailPayload{
		To:      []string{input.To},
		Subject: "Welcome to Fastbreak Summer Hoops Camp",
		HTML:    welcomeEmailHTML(input.Name, input.Role),
		ReplyTo: deps.ReplyTo,
	})
	if err != nil {
		slog.Error("welcome_email_payload_failed", "error", err)
		return
	}

	entry := outbox.Entry{
		ID:          deps.GenerateID(),
		ActionType:  outbox.ActionTypeEmail,
		Payload:     string(payload),
		Status:      outbox.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   deps.Now(),
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		slog.Error("welcome_email_enqueue_failed", "error", err, "to", input.To)
		return
	}

	entry.MarkAttempt()
	_, sendErr := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{input.To},
		Subject: "Welcome to Fastbreak Summer Hoops Camp",
		HTML:    welcomeEmailHTML(input.Name, input.Role),
		ReplyTo: deps.ReplyTo,
	})
	if sendErr != nil {
		entry.MarkFailed(sendErr)
		slog.Warn("welcome_email_send_failed", "to", input.To, "error", sendErr)
	} else {
		entry.MarkSuccess("")
		slog.Info("welcome_email_sent", "to", input.To)
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		slog.Error("welcome_email_save_failed", "entry_id", entry.ID, "error", err)
	}
}

// welcomeEmailHTML builds the welcome body for a new account.
func welcomeEmailHTML(name, role string) string {
	intro := "Your family is all set for camp. Log in any time to see your campers and their pods."
	if role == "counselor" {
		intro = "Your counselor profile is live. Keep your availability calendar up to date so the staff board stays accurate."
	}
	return fmt.Sprintf(
		"<h1>Welcome, %s!</h1><p>%s</p><p>See you on the court,<br>The Fastbreak Camp team</p>",
		name, intro)
}
