package mailer

import (
	"fmt"
	"os"
	"strings"
)

type SubscriberConfirmationData struct {
	Email        string
	FeatureTitle string
	CompanyName  string
	Token        string
}

// SubscriberConfirmation enqueues the double-opt-in email with the
// single-use confirmation link.
func SubscriberConfirmation(data SubscriberConfirmationData) {
	subject := fmt.Sprintf("Subject: Confirm your interest in %s - %s \r\n", data.FeatureTitle, data.CompanyName)
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	link := SiteURL() + "/confirm/" + data.Token
	body := fmt.Sprintf(`
	<div style="background-color: #F472B6; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">One more step!</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p>Thanks for your interest in <strong>%s</strong> by %s.</p>
						<p>Please confirm your email address to join the waitlist:</p>
						<p><a href="%s" style="background-color: #F472B6; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Confirm my email</a></p>
						<p>If the button does not work, copy this link into your browser:</p>
						<p>%s</p>
						<p style="color: #888888">If you did not request this, you can ignore this email.</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, data.FeatureTitle, data.CompanyName, link, link)

	message := []byte(subject + mime + body)
	Enqueue(data.Email, message)
}

// SiteURL is the public web root used in email links
func SiteURL() string {
	return strings.TrimRight(os.Getenv("SITE_URL"), "/")
}
