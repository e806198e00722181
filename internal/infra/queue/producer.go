package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotificationPayload is everything the worker needs to e-mail a
// consultant without going back to the database.
type LeadNotificationPayload struct {
	LeadID          string            `json:"lead_id"`
	To              string            `json:"to"`
	ConsultantName  string            `json:"consultant_name,omitempty"`
	CampaignName    string            `json:"campaign_name,omitempty"`
	LandingPageName string            `json:"landing_page_name,omitempty"`
	VehicleName     string            `json:"vehicle_name,omitempty"`
	Source          string            `json:"source"`
	Email           string            `json:"email"`
	Name            string            `json:"name,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Address         string            `json:"address,omitempty"`
	Message         string            `json:"message,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// Publisher is the subset of *amqp.Channel used for publishing.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadNotification(ctx context.Context, payload LeadNotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.LeadID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
