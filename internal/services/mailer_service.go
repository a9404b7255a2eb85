package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// MailerService sends guest notification emails over SMTP. Delivery failures
// are logged and reported to the caller, who must not let them fail the
// triggering state transition.
type MailerService struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewMailerService creates a MailerService.
func NewMailerService(host string, port int, user, pass, from string) *MailerService {
	return &MailerService{host: host, port: port, user: user, pass: pass, from: from}
}

// SendMail sends a single HTML email.
func (s *MailerService) SendMail(to, subject, html string) error {
	if s.host == "" {
		log.Printf("[Mailer] SMTP not configured, skipping mail to %s: %s", to, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	dialer := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("[Mailer] Failed to send mail to %s: %v", to, err)
		return err
	}

	return nil
}

// OrderConfirmation carries the data for a payment-confirmed email.
type OrderConfirmation struct {
	OrderID     string
	GuestName   string
	GuestEmail  string
	TotalAmount decimal.Decimal
	Items       []OrderItemConfirmation
}

// OrderItemConfirmation is one purchased line in the confirmation email.
type OrderItemConfirmation struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// NotifyOrderConfirmed emails the guest that their payment was verified.
func (s *MailerService) NotifyOrderConfirmed(conf OrderConfirmation) error {
	var itemsList strings.Builder
	for _, item := range conf.Items {
		itemsList.WriteString(fmt.Sprintf("<li>%s &times; %d @ %s</li>",
			item.Name, item.Quantity, item.UnitPrice.StringFixed(2)))
	}

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your order #%s has been verified and confirmed!</p>
<ul>%s</ul>
<p>Total: %s</p>`,
		conf.GuestName,
		conf.OrderID,
		itemsList.String(),
		conf.TotalAmount.StringFixed(2),
	)

	subject := fmt.Sprintf("Order #%s Confirmed", conf.OrderID)
	return s.SendMail(conf.GuestEmail, subject, body)
}
