// Package delivery holds the outbound collaborators: email sending and
// social-network publishing. Both are best-effort, single-attempt calls.
//
// Absence of provider credentials is a valid, reportable outcome: senders
// return a structured configuration-missing result and never raise.
package delivery

import "context"

// Result is the structured outcome of a delivery attempt.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// NotConfigured distinguishes "feature not configured" from a hard
	// delivery failure in user-visible rendering.
	NotConfigured bool `json:"notConfigured,omitempty"`
}

// ConfigMissing builds the standard result for an unconfigured feature.
func ConfigMissing(feature string) Result {
	return Result{
		Success:       false,
		NotConfigured: true,
		Message:       "feature not configured: " + feature,
	}
}

// EmailSender delivers a single email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) Result
}

// SocialPublisher publishes a single post to a named platform.
type SocialPublisher interface {
	Publish(ctx context.Context, platform, content string) Result
}
