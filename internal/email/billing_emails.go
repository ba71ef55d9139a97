// billing_emails.go — billing-specific transactional emails.
package email

import "fmt"

// SendSubscriptionActivated confirms a successful premium checkout.
// expiresOn is a human-readable date ("2026-09-30").
func SendSubscriptionActivated(toEmail, displayName, plan, expiresOn string) error {
	subject := "Your Animax subscription is active"
	body := fmt.Sprintf(`Hi %s,

Your Animax %s subscription is now active. Enjoy the full catalog!

Your current period runs through %s. We'll remind you before it ends.

If you have questions, reply to this email.

— The Animax Team`, displayName, plan, expiresOn)

	return send(toEmail, subject, body)
}

// SendSubscriptionExpiring reminds the viewer shortly before their plan lapses.
func SendSubscriptionExpiring(toEmail, displayName, expiresOn string) error {
	subject := "Your Animax subscription expires soon"
	body := fmt.Sprintf(`Hi %s,

Your Animax premium subscription expires on %s.

Renew from your profile page to keep watching without interruption.

— The Animax Team`, displayName, expiresOn)

	return send(toEmail, subject, body)
}
