package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Event событие жизненного цикла бронирования для сервиса уведомлений
type Event struct {
	Type             string    `json:"type"` // booking.created | booking.cancelled
	BookingID        int64     `json:"bookingId"`
	BookingReference string    `json:"bookingReference,omitempty"`
	PropertyID       int64     `json:"propertyId"`
	PropertyName     string    `json:"propertyName"`
	UserID           int64     `json:"userId"`
	UserEmail        string    `json:"userEmail"`
	CheckIn          string    `json:"checkIn"`
	CheckOut         string    `json:"checkOut"`
	TotalCost        float64   `json:"totalCost"`
	RefundAmount     float64   `json:"refundAmount,omitempty"`
	OccurredAt       time.Time `json:"occurredAt"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// Publisher издатель событий бронирований в RabbitMQ
// Доставкой писем и SMS занимается отдельный сервис-потребитель очереди
type Publisher struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel

	log Logger
}

// NewPublisher создает издателя и устанавливает соединение с RabbitMQ
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		exchange: exchange,
		log:      log,
	}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("notifier: failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("notifier: failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("notifier: failed to declare exchange: %w", err)
	}

	p.conn = conn
	p.channel = channel
	return nil
}

// Publish публикует событие с routing key, равным типу события
// Ошибка публикации не должна откатывать уже закоммиченное бронирование:
// вызывающая сторона логирует её и продолжает работу
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notifier: failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Переподключаемся, если соединение потеряно
	if p.conn == nil || p.conn.IsClosed() {
		p.log.Warn("Notifier connection lost, reconnecting to RabbitMQ")
		if err := p.connect(); err != nil {
			return err
		}
	}

	err = p.channel.Publish(
		p.exchange,
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("notifier: failed to publish %s for booking=%d: %w", event.Type, event.BookingID, err)
	}

	p.log.Info("Published %s for booking=%d", event.Type, event.BookingID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher заглушка издателя, используется когда RabbitMQ отключён
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
