package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Listener слушает события других реплик и сбрасывает их локации в локальном кэше
type Listener struct {
	channel     *amqp.Channel
	queue       string
	instanceID  string
	invalidator Invalidator
	logger      Logger
}

// NewListener объявляет эксклюзивную очередь реплики и привязывает её к exchange
func NewListener(conn *amqp.Connection, exchange, instanceID string, invalidator Invalidator, logger Logger) (*Listener, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %v", ErrChannel, err)
	}

	if err := declareExchange(ch, exchange); err != nil {
		_ = ch.Close()
		return nil, err
	}

	queue, err := ch.QueueDeclare("capacity-cache."+instanceID, false, true, true, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%w: declare queue: %v", ErrChannel, err)
	}

	if err := ch.QueueBind(queue.Name, RoutingKeyPrefix+"#", exchange, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%w: bind queue: %v", ErrChannel, err)
	}

	return newListener(ch, queue.Name, instanceID, invalidator, logger), nil
}

func newListener(ch *amqp.Channel, queue, instanceID string, invalidator Invalidator, logger Logger) *Listener {
	return &Listener{
		channel:     ch,
		queue:       queue,
		instanceID:  instanceID,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Start запускает потребление; обработка идет до отмены ctx или закрытия канала
func (l *Listener) Start(ctx context.Context) error {
	deliveries, err := l.channel.Consume(l.queue, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("%w: consume: %v", ErrChannel, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					l.logger.Warn("Events: delivery channel closed")
					return
				}
				if err := l.Handle(d.Body); err != nil {
					l.logger.Warn("Events: %v", err)
				}
			}
		}
	}()

	l.logger.Info("Events: listening on queue %s", l.queue)
	return nil
}

// Handle обрабатывает тело одного события. Собственные события реплики пропускаются.
func (l *Listener) Handle(body []byte) error {
	var evt CapacityChanged
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if evt.LocationID == "" {
		return fmt.Errorf("%w: empty locationId", ErrDecode)
	}

	if evt.Source == l.instanceID {
		return nil
	}

	l.invalidator.Invalidate(evt.LocationID)
	return nil
}

// Close закрывает канал
func (l *Listener) Close() error {
	if l.channel == nil {
		return nil
	}
	return l.channel.Close()
}
