package comms

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	DefaultControlExchange = "nxt_ctrl"
	DefaultEventsExchange  = "nxt_events"

	ContentTypeCmd   = "application/json"
	ContentTypeReply = "application/json"
)

// AMQPConfig names the broker and the two fanout exchanges. Commands are
// consumed from Control and one Reply per command is published to Events.
type AMQPConfig struct {
	URL     string
	Control string
	Events  string
}

func (c *AMQPConfig) populateDefaults() {
	if c.Control == "" {
		c.Control = DefaultControlExchange
	}
	if c.Events == "" {
		c.Events = DefaultEventsExchange
	}
}

type AMQPListener struct {
	config    AMQPConfig
	conn      *amqp.Connection
	ch        *amqp.Channel
	queue     amqp.Queue
	conductor ConductorInterface
	logger    *zap.SugaredLogger
}

func declareFanout(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,     // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
}

// DialAMQP connects to the broker and binds an exclusive queue to the
// control exchange.
func DialAMQP(config AMQPConfig, conductor ConductorInterface, logger *zap.SugaredLogger) (l *AMQPListener, err error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	config.populateDefaults()

	l = &AMQPListener{
		config:    config,
		conductor: conductor,
		logger:    logger,
	}

	if l.conn, err = amqp.Dial(config.URL); err != nil {
		return nil, errors.Wrap(err, "unable to reach broker")
	}
	if l.ch, err = l.conn.Channel(); err != nil {
		l.conn.Close()
		return nil, errors.Wrap(err, "unable to open channel")
	}

	if err = l.setup(); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

func (l *AMQPListener) setup() (err error) {
	if err = declareFanout(l.ch, l.config.Control); err != nil {
		return errors.Wrapf(err, "declare %s", l.config.Control)
	}
	if err = declareFanout(l.ch, l.config.Events); err != nil {
		return errors.Wrapf(err, "declare %s", l.config.Events)
	}

	l.queue, err = l.ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return errors.Wrap(err, "declare control queue")
	}

	err = l.ch.QueueBind(
		l.queue.Name,     // queue name
		"",               // routing key
		l.config.Control, // exchange
		false,
		nil,
	)
	return errors.Wrap(err, "bind control queue")
}

// Listen processes deliveries until the channel is closed.
func (l *AMQPListener) Listen() error {
	msgs, err := l.ch.Consume(
		l.queue.Name, // queue
		"",           // consumer
		true,         // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return errors.Wrap(err, "consume")
	}

	for d := range msgs {
		reply := handleDelivery(l.conductor, d)
		if err := l.publish(d.CorrelationId, reply); err != nil {
			l.logger.Warnw("unable to publish reply", "error", err)
		}
	}
	return nil
}

// handleDelivery runs a delivery through the conductor. Only JSON bodies
// are understood.
func handleDelivery(conductor ConductorInterface, d amqp.Delivery) Reply {
	if d.ContentType != "" && d.ContentType != ContentTypeCmd {
		return Reply{Error: "unsupported content type " + d.ContentType}
	}
	return handleMessage(conductor, d.Body)
}

func (l *AMQPListener) publish(correlationID string, reply Reply) error {
	body, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	return l.ch.Publish(
		l.config.Events, // exchange
		"",              // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:   ContentTypeReply,
			CorrelationId: correlationID,
			Body:          body,
		},
	)
}

func (l *AMQPListener) Close() error {
	if l.ch != nil {
		l.ch.Close()
	}
	if l.conn != nil {
		return l.conn.Close()
	}
	return nil
}
