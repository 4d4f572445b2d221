package notifier

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const sendEndpoint = "/v3/mail/send"

// EmailConfig настройки отправки через SendGrid
type EmailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	Host      string // пусто - api.sendgrid.com
}

// EmailChannel отправляет уведомления письмом через SendGrid
type EmailChannel struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewEmailChannel создает канал; без API ключа возвращает nil
func NewEmailChannel(cfg EmailConfig) *EmailChannel {
	if cfg.APIKey == "" {
		return nil
	}

	client := sendgrid.NewSendClient(cfg.APIKey)
	if cfg.Host != "" {
		request := sendgrid.GetRequest(cfg.APIKey, sendEndpoint, cfg.Host)
		request.Method = "POST"
		client = &sendgrid.Client{Request: request}
	}

	return &EmailChannel{
		client: client,
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

func (c *EmailChannel) Name() string {
	return "email"
}

// Send отправляет письмо; сгенерированные адреса walk-in клиентов пропускаются
func (c *EmailChannel) Send(ctx context.Context, msg Message) error {
	if msg.Contact.Email == "" || domain.IsPlaceholderEmail(msg.Contact.Email) {
		return ErrNoAddress
	}

	to := mail.NewEmail(msg.Contact.Name, msg.Contact.Email)
	message := mail.NewSingleEmail(c.from, msg.Subject, to, msg.Body, msg.Body)

	response, err := c.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", ErrDelivery, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid returned status %d", ErrDelivery, response.StatusCode)
	}

	return nil
}
