package mail

import "fmt"

// MagicLinkEmail renders the sign-in link email.
func MagicLinkEmail(baseURL, token string) (subject, htmlBody, textBody string) {
	link := fmt.Sprintf("%s/auth/verify?token=%s", baseURL, token)

	subject = "Your Meridian Capital sign-in link"
	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:32px;background:#F8FAFC;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;">
  <table role="presentation" width="600" style="margin:0 auto;background:#FFFFFF;border-radius:12px;padding:40px;">
    <tr><td>
      <h2 style="margin:0 0 12px;color:#0D1A2D;">Sign in to Meridian Capital</h2>
      <p style="margin:0 0 28px;color:#64748B;line-height:1.6;">Click the button below to sign in. The link works once and expires in 15 minutes.</p>
      <a href="%s" style="display:inline-block;padding:14px 28px;background:#1C5D99;color:#FFFFFF;border-radius:8px;text-decoration:none;font-weight:600;">Sign in</a>
      <p style="margin:28px 0 0;color:#94A3B8;font-size:13px;">If you did not request this link, you can safely ignore this email.</p>
    </td></tr>
  </table>
</body>
</html>`, link)
	textBody = fmt.Sprintf(`Sign in to Meridian Capital:

%s

The link works once and expires in 15 minutes. If you did not request it, ignore this email.
`, link)
	return subject, htmlBody, textBody
}

// WelcomeEmail renders the newsletter welcome email.
func WelcomeEmail(baseURL string) (subject, htmlBody, textBody string) {
	subject = "Welcome to the Meridian Capital newsletter"
	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:32px;background:#F8FAFC;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;">
  <table role="presentation" width="600" style="margin:0 auto;background:#FFFFFF;border-radius:12px;padding:40px;">
    <tr><td>
      <h2 style="margin:0 0 12px;color:#0D1A2D;">Thanks for subscribing</h2>
      <p style="margin:0 0 28px;color:#64748B;line-height:1.6;">You'll hear from us about new investments, founder stories, and podcast episodes.</p>
      <a href="%s/portfolio" style="color:#1C5D99;">Browse the portfolio</a>
    </td></tr>
  </table>
</body>
</html>`, baseURL)
	textBody = fmt.Sprintf(`Thanks for subscribing to the Meridian Capital newsletter.

You'll hear from us about new investments, founder stories, and podcast episodes.

Browse the portfolio: %s/portfolio
`, baseURL)
	return subject, htmlBody, textBody
}
