package notify

import (
	"context"
	"fmt"
	"html"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers messages to users. Implementations can be swapped without
// touching callers.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a Resend-backed notifier, or a logging one when no API key is set.
func New(apiKey, from string) Notifier {
	if apiKey == "" {
		return NewLogNotifier()
	}
	return NewResendNotifier(apiKey, from)
}

// WelcomeMessage is sent the first time a user signs in.
func WelcomeMessage(name, email, appURL string) Message {
	return Message{
		To:      email,
		Subject: "Welcome to fit1",
		HTML: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome, %s! 💪</h2>
				<p>Your fit1 account is ready. Add your height, weight and goal to get personalised calorie, water and sleep targets.</p>
				<a href="%s" style="display: inline-block; background: #16a34a; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600;">
					Open your dashboard
				</a>
				<p style="color: #aaa; font-size: 12px; margin-top: 16px;">
					You are receiving this because you signed in to fit1.
				</p>
			</div>
		`, html.EscapeString(name), html.EscapeString(appURL)),
	}
}
