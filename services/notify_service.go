// services/notify_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"bookeasy-backend/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// BookingDetails carries everything the notification templates can mention.
type BookingDetails struct {
	ClientName    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          string
	Time          string
	ServiceName   string
	Duration      int
	Price         float64
}

const (
	customerConfirmationSubject = "Your appointment is booked"
	customerConfirmationBody    = "Hi {{customerName}},\n\n" +
		"Your appointment with {{clientName}} is confirmed.\n\n" +
		"Service: {{serviceName}} ({{duration}} min)\n" +
		"Date: {{date}}\n" +
		"Time: {{time}}\n" +
		"Price: {{price}}\n\n" +
		"Thank you for booking with {{shopName}}."

	providerNotificationSubject = "New appointment booked"
	providerNotificationBody    = "Hi {{clientName}},\n\n" +
		"A new appointment has been booked.\n\n" +
		"Customer: {{customerName}} ({{customerEmail}}, {{customerPhone}})\n" +
		"Service: {{serviceName}} ({{duration}} min)\n" +
		"Date: {{date}}\n" +
		"Time: {{time}}\n\n" +
		"{{shopName}}"

	customerReminderSubject = "Appointment reminder for tomorrow"
	customerReminderBody    = "Hi {{customerName}},\n\n" +
		"This is a reminder of your appointment with {{clientName}} tomorrow.\n\n" +
		"Service: {{serviceName}}\n" +
		"Date: {{date}}\n" +
		"Time: {{time}}\n\n" +
		"See you soon,\n{{shopName}}"

	customerConfirmationSMS = "{{shopName}}: your appointment with {{clientName}} on {{date}} at {{time}} is booked."
)

// NotifyService sends customer and provider notifications. Every send is
// best-effort: failures are logged, never raised to the booking flow.
type NotifyService struct {
	sms      *twilio.RestClient
	shopName string
}

func NewNotifyService() *NotifyService {
	shopName := os.Getenv("SHOP_NAME")
	if shopName == "" {
		shopName = "BookEasy"
	}

	n := &NotifyService{shopName: shopName}
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		n.sms = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: os.Getenv("TWILIO_ACCOUNT_SID"),
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		})
	}
	return n
}

// DispatchBooking fans out the post-commit notifications for one booking.
func (n *NotifyService) DispatchBooking(customerEmail, customerPhone, ownerEmail string, d BookingDetails) {
	vars := n.templateVars(d)

	n.sendEmail(customerEmail, d.CustomerName,
		customerConfirmationSubject, renderTemplate(customerConfirmationBody, vars))

	if ownerEmail != "" {
		n.sendEmail(ownerEmail, d.ClientName,
			providerNotificationSubject, renderTemplate(providerNotificationBody, vars))
	}

	if utils.ValidatePhone(customerPhone) {
		n.sendSMS(customerPhone, renderTemplate(customerConfirmationSMS, vars))
	}
}

// SendAppointmentReminder emails a customer about a next-day appointment.
func (n *NotifyService) SendAppointmentReminder(customerEmail string, d BookingDetails) error {
	return n.sendEmail(customerEmail, d.CustomerName,
		customerReminderSubject, renderTemplate(customerReminderBody, n.templateVars(d)))
}

func (n *NotifyService) templateVars(d BookingDetails) map[string]string {
	return map[string]string{
		"shopName":      n.shopName,
		"clientName":    d.ClientName,
		"customerName":  d.CustomerName,
		"customerEmail": d.CustomerEmail,
		"customerPhone": d.CustomerPhone,
		"date":          d.Date,
		"time":          d.Time,
		"serviceName":   d.ServiceName,
		"duration":      fmt.Sprintf("%d", d.Duration),
		"price":         fmt.Sprintf("%.2f", d.Price),
	}
}

func renderTemplate(template string, variables map[string]string) string {
	result := template
	for key, value := range variables {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

func (n *NotifyService) sendEmail(to, toName, subject, body string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if apiKey == "" || fromEmail == "" {
		log.Printf("Email not sent to %s: SendGrid is not configured", to)
		return nil
	}

	from := mail.NewEmail(n.shopName, fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}
	if response.StatusCode >= 300 {
		log.Printf("SendGrid rejected email to %s: status %d", to, response.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	log.Printf("Email sent to %s (%s)", to, subject)
	return nil
}

func (n *NotifyService) sendSMS(to, body string) {
	if n.sms == nil {
		return
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(body)

	resp, err := n.sms.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", to, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	}
}
