// Package email provides Elastic Email HTTP API integration for transactional emails.
// Uses HTTP API v2 (not SMTP) — more reliable for programmatic sending.
// When ELASTIC_EMAIL_API_KEY is unset the package runs in dev mode: messages
// are logged to stdout instead of sent, so local signup flows still work.
package email

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const elasticAPIURL = "https://api.elasticemail.com/v2/email/send"

var httpClient = &http.Client{Timeout: 10 * time.Second}

// SendVerificationCode sends a six-digit verification code to the viewer.
// Codes expire 15 minutes after issue; the account handlers enforce that.
func SendVerificationCode(toEmail, displayName, code string) error {
	subject := "Your Animax verification code"
	body := fmt.Sprintf(`Hello %s,

Welcome to Animax! Use the code below to verify your email address:

    %s

This code expires in 15 minutes.

If you didn't create an Animax account, you can safely ignore this email.

— The Animax Team`, displayName, code)

	return send(toEmail, subject, body)
}

// SendLockoutNotification informs the viewer their account is temporarily locked.
func SendLockoutNotification(toEmail, displayName string, lockoutMinutes int) error {
	subject := "Animax: Multiple failed login attempts detected"
	body := fmt.Sprintf(`Hello %s,

We detected multiple failed login attempts on your Animax account.
Your account has been temporarily locked for %d minutes as a security measure.

If this was you, please wait and try again later.
If this wasn't you, we recommend changing your password when the lockout clears.

— The Animax Team`, displayName, lockoutMinutes)

	return send(toEmail, subject, body)
}

// send is the internal implementation using Elastic Email HTTP API v2.
// API key is read from ELASTIC_EMAIL_API_KEY. Never logs the API key.
// Without a key, logs the message to stdout (dev mode) and returns nil.
func send(toEmail, subject, body string) error {
	apiKey := os.Getenv("ELASTIC_EMAIL_API_KEY")
	if apiKey == "" {
		log.Printf("[email] dev mode, not sending. to=%s subject=%q\n%s", toEmail, subject, body)
		return nil
	}

	sender := os.Getenv("ELASTIC_EMAIL_SENDER")
	if sender == "" {
		sender = "noreply@animax.example.com"
	}

	params := url.Values{}
	params.Set("apikey", apiKey)
	params.Set("from", sender)
	params.Set("to", toEmail)
	params.Set("subject", subject)
	params.Set("bodyText", body)
	params.Set("isTransactional", "true")

	resp, err := httpClient.Post(elasticAPIURL, "application/x-www-form-urlencoded",
		strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("elastic email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("elastic email API error %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Send is a general-purpose exported wrapper for sending any email via Elastic Email.
// Use this when specific typed helpers (SendVerificationCode, etc.) don't apply.
func Send(toEmail, subject, body string) error {
	return send(toEmail, subject, body)
}
