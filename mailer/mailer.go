// Package mailer sends transactional email in the background. Mutations
// enqueue a message and return; delivery happens on a worker goroutine
// and a failed send never propagates back to the caller.
package mailer

import (
	"net/smtp"
	"os"

	"sugary-backend/utils"
)

type Message struct {
	To   string
	Body []byte
}

var queue = make(chan Message, 256)

// Start launches the delivery worker. Call once from main.
func Start() {
	go func() {
		for msg := range queue {
			send(msg)
		}
	}()
}

// Enqueue hands a message to the worker without blocking. When the
// queue is full the message is dropped and logged; the triggering
// mutation already succeeded and must stay successful.
func Enqueue(to string, body []byte) {
	select {
	case queue <- Message{To: to, Body: body}:
	default:
		utils.LogError(nil, "Mail queue full, dropping message to "+to)
	}
}

func send(msg Message) {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")

	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{msg.To}, msg.Body)
	if err != nil {
		utils.LogError(err, "Error sending email to "+msg.To)
		return
	}

	utils.LogSuccess("Email sent to " + msg.To)
}
