package messaging

import (
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DeclareBindAndConsume binds an exclusive server named queue to the topic exchange.
func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// Decode reads a message body written by Send.
func Decode[V any](d amqp.Delivery) (V, error) {
	var ret V
	err := jsoncompat.Unmarshal(d.Body, &ret)
	return ret, err
}

// ListenToTopic consumes the topic until the channel closes. Messages the handler
// fails are rejected without requeue, the rest are acked.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, logger *zap.Logger, handler func(amqp.Delivery) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func() {
		defer ch.Close()
		for d := range msgs {
			if err := handler(d); err != nil {
				logger.Warn("error processing message", zap.String("topic", string(topic)), zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}()
	return nil
}
