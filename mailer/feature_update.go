package mailer

import (
	"fmt"
)

type FeatureUpdateData struct {
	Email        string
	CompanyName  string
	FeatureTitle string
	UpdateTitle  string
	Content      string
}

// FeatureUpdate enqueues one broadcast email for a single confirmed
// subscriber. Recipients are addressed individually, never as one
// multi-recipient send.
func FeatureUpdate(data FeatureUpdateData) {
	subject := fmt.Sprintf("Subject: %s - news about %s \r\n", data.UpdateTitle, data.FeatureTitle)
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #F472B6; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">%s</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p>An update from %s about <strong>%s</strong>:</p>
						<blockquote style="background-color: #f5f5f5; padding: 15px; border-left: 5px solid #F472B6; text-align: left;">
							%s
						</blockquote>
						<p style="color: #888888">You receive this email because you joined the waitlist for this feature.</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, data.UpdateTitle, data.CompanyName, data.FeatureTitle, data.Content)

	message := []byte(subject + mime + body)
	Enqueue(data.Email, message)
}
