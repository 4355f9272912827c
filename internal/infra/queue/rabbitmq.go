package mq

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/marconi-lab/annotator/internal/config"
)

// DialFunc opens a RabbitMQ connection; the publisher re-dials through it
// when the broker drops the channel.
type DialFunc func() (*amqp.Connection, error)

// Publisher pushes outbound mail jobs onto the configured exchange. Email
// delivery itself happens out-of-band in the delivery worker consuming the
// queue, so publishing is the fire-and-forget boundary.
type Publisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger
	cfg  *config.Config
	dial DialFunc
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger, cfg *config.Config, dial DialFunc) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(cfg.RabbitMQ.ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, log: log, cfg: cfg, dial: dial}, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}

// PublishJSON serializes body and publishes it with the configured routing
// key. A single reconnect is attempted when the channel has gone away.
func (p *Publisher) PublishJSON(ctx context.Context, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	publish := func() error {
		return p.ch.PublishWithContext(ctx,
			p.cfg.RabbitMQ.ExchangeName,
			p.cfg.RabbitMQ.RoutingKey,
			false, false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         b,
			})
	}

	if err := publish(); err != nil {
		p.log.Warn("publish failed, redialing", zap.Error(err))
		if rerr := p.reconnect(); rerr != nil {
			return err
		}
		return publish()
	}
	return nil
}

func (p *Publisher) reconnect() error {
	conn, err := p.dial()
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(p.cfg.RabbitMQ.ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	p.conn = conn
	p.ch = ch
	return nil
}
