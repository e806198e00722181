package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable).Error(0)
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	ret := m.Called(name, args)
	return amqp.Queue{Name: name}, ret.Error(0)
}

func (m *MockChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	return m.Called(name, key, exchange).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendLeadNotification(ctx context.Context, payload LeadNotificationPayload) error {
	return m.Called(ctx, payload).Error(0)
}

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(tag uint64, multiple bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked, f.requeued = true, requeue
	return nil
}
func (f *fakeAck) Reject(tag uint64, requeue bool) error { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishLeadNotification(t *testing.T) {
	pub := new(MockPublisher)
	producer := NewProducer(pub)
	payload := LeadNotificationPayload{LeadID: "lead-1", To: "consultant@example.com", Email: "a@b.co", Source: "landing_page"}

	pub.On("PublishWithContext", mock.Anything, ExchangeName, RoutingKey, false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var got LeadNotificationPayload
			if err := json.Unmarshal(msg.Body, &got); err != nil {
				return false
			}
			return msg.DeliveryMode == amqp.Persistent && msg.MessageId == "lead-1" && got.To == payload.To
		})).Return(nil).Once()

	require.NoError(t, producer.PublishLeadNotification(context.Background(), payload))
	pub.AssertExpectations(t)

	pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed")).Once()
	assert.Error(t, producer.PublishLeadNotification(context.Background(), payload))
}

func TestSetupTopology(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", DLXName, "direct", true).Return(nil).Once()
	ch.On("QueueDeclare", DLQName, amqp.Table(nil)).Return(nil).Once()
	ch.On("QueueBind", DLQName, RoutingKey, DLXName).Return(nil).Once()
	ch.On("ExchangeDeclare", ExchangeName, "direct", true).Return(nil).Once()
	ch.On("QueueDeclare", QueueName, amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKey,
	}).Return(nil).Once()
	ch.On("QueueBind", QueueName, RoutingKey, ExchangeName).Return(nil).Once()

	require.NoError(t, setupTopology(ch))
	ch.AssertExpectations(t)
}

func TestWorkerHandle(t *testing.T) {
	payload := LeadNotificationPayload{LeadID: "lead-1", To: "c@example.com", Email: "a@b.co"}
	body, _ := json.Marshal(payload)

	t.Run("ack on success", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("SendLeadNotification", mock.Anything, payload).Return(nil).Once()
		ack := &fakeAck{}

		NewWorker(nil, mailer, quietLogger()).Handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: body})

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
		mailer.AssertExpectations(t)
	})

	t.Run("dead letter on send failure", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("SendLeadNotification", mock.Anything, payload).Return(errors.New("smtp down")).Once()
		ack := &fakeAck{}

		NewWorker(nil, mailer, quietLogger()).Handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: body})

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeued)
	})

	t.Run("dead letter on malformed body", func(t *testing.T) {
		mailer := new(MockMailer)
		ack := &fakeAck{}

		NewWorker(nil, mailer, quietLogger()).Handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{")})

		assert.True(t, ack.nacked)
		mailer.AssertNotCalled(t, "SendLeadNotification", mock.Anything, mock.Anything)
	})
}
