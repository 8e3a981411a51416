package services

import (
	"fmt"
	"html"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"paintcompany/internal/models"
)

// Sender delivers a prepared message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService sends contact form notifications to the shop.
type EmailService struct {
	sender Sender
	from   string
	to     string
}

// NewEmailService returns a service that sends through SMTP. With empty
// credentials it only logs.
func NewEmailService(host string, port int, user, pass, notify string) *EmailService {
	if notify == "" {
		notify = user
	}
	if user == "" || pass == "" {
		log.Println("SMTP credentials not set, contact notifications disabled")
		return &EmailService{from: "noreply@paintcompany.com.np", to: notify}
	}
	return &EmailService{
		sender: gomail.NewDialer(host, port, user, pass),
		from:   user,
		to:     notify,
	}
}

// NewEmailServiceWithSender is used when the transport is provided by the caller.
func NewEmailServiceWithSender(s Sender, from, to string) *EmailService {
	return &EmailService{sender: s, from: from, to: to}
}

// Enabled reports whether messages are actually sent.
func (es *EmailService) Enabled() bool {
	return es.sender != nil && es.to != ""
}

// SendContactNotification tells the shop about a new contact form message.
func (es *EmailService) SendContactNotification(msg models.ContactMessage) error {
	if !es.Enabled() {
		log.Printf("Contact notification skipped for %s", msg.Email)
		return nil
	}

	body := fmt.Sprintf(`
		<h2>New message from the website</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p>%s</p>
	`, html.EscapeString(msg.FullName), html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", es.to)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", "Contact form: "+msg.FullName)
	m.SetBody("text/html", body)

	if err := es.sender.DialAndSend(m); err != nil {
		log.Printf("Contact notification failed: %v", err)
		return err
	}
	log.Printf("Contact notification sent for %s", msg.Email)
	return nil
}
