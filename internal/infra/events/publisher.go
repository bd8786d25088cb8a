package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует события об изменении вместимости в topic exchange
type Publisher struct {
	mu         sync.Mutex
	channel    *amqp.Channel
	exchange   string
	instanceID string
	logger     Logger
}

// NewPublisher открывает канал и объявляет exchange
func NewPublisher(conn *amqp.Connection, exchange, instanceID string, logger Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %v", ErrChannel, err)
	}

	if err := declareExchange(ch, exchange); err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Publisher{
		channel:    ch,
		exchange:   exchange,
		instanceID: instanceID,
		logger:     logger,
	}, nil
}

// PublishCapacityChanged публикует событие; Source и OccurredAt заполняются, если пусты
func (p *Publisher) PublishCapacityChanged(ctx context.Context, evt CapacityChanged) error {
	if evt.Source == "" {
		evt.Source = p.instanceID
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}

	// amqp.Channel не допускает конкурентную публикацию
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, evt.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    evt.OccurredAt,
		AppId:        p.instanceID,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.logger.Info("Events: published %s for location=%s", evt.RoutingKey(), evt.LocationID)
	return nil
}

// Close закрывает канал
func (p *Publisher) Close() error {
	return p.channel.Close()
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%w: declare exchange %s: %v", ErrChannel, exchange, err)
	}
	return nil
}
