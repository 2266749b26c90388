// internal/services/notification_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/smtp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/meridianmade/storefront/internal/config"
	"github.com/meridianmade/storefront/internal/models"
)

type NotificationService struct {
	config *config.Config
	client *http.Client
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendOrderConfirmation emails the customer a summary of their paid order.
func (s *NotificationService) SendOrderConfirmation(order *models.Order) error {
	tmpl := s.getEmailTemplate("order_confirmation")

	data := map[string]interface{}{
		"CustomerName": order.CustomerName,
		"OrderID":      order.ID,
		"Items":        order.Items,
		"Subtotal":     formatCents(order.SubtotalCents),
		"Shipping":     formatCents(order.ShippingCents),
		"Total":        formatCents(order.TotalCents),
		"StoreName":    s.config.Email.FromName,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.SendEmail(order.CustomerEmail, tmpl.Subject, body)
}

// SendDigitalDelivery emails time-limited download links for digital items.
func (s *NotificationService) SendDigitalDelivery(order *models.Order, links []DownloadLink) error {
	tmpl := s.getEmailTemplate("digital_delivery")

	data := map[string]interface{}{
		"CustomerName": order.CustomerName,
		"Links":        links,
		"ExpiresIn":    fmt.Sprintf("%d hours", s.config.AWS.DownloadTTL),
		"StoreName":    s.config.Email.FromName,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.SendEmail(order.CustomerEmail, tmpl.Subject, body)
}

func (s *NotificationService) SendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).
			Info("Email not configured, skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s <%s>\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, s.config.Email.FromName, s.config.Email.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

// SendSMS posts a message to the configured SMS gateway.
func (s *NotificationService) SendSMS(to, message string) error {
	if s.config.SMS.GatewayURL == "" {
		logrus.WithField("to", to).Info("SMS not configured, skipping send")
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"to":      to,
		"from":    s.config.SMS.From,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode SMS payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.config.SMS.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.SMS.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"order_confirmation": {
			Subject: "Your order is confirmed",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order{{if .CustomerName}}, {{.CustomerName}}{{end}}!</h2>
	<p>Order reference: {{.OrderID}}</p>
	<ul>
	{{range .Items}}
		<li>{{.Name}} &times; {{.Quantity}}</li>
	{{end}}
	</ul>
	<p>Subtotal: {{.Subtotal}}<br>Shipping: {{.Shipping}}<br><strong>Total: {{.Total}}</strong></p>
	<p>Best regards,<br>{{.StoreName}}</p>
</body>
</html>`,
		},
		"digital_delivery": {
			Subject: "Your downloads are ready",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Your downloads are ready{{if .CustomerName}}, {{.CustomerName}}{{end}}</h2>
	<ul>
	{{range .Links}}
		<li><a href="{{.URL}}">{{.Name}}</a></li>
	{{end}}
	</ul>
	<p>Links expire in {{.ExpiresIn}}.</p>
	<p>Best regards,<br>{{.StoreName}}</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
