package tracking

import (
	"github.com/matst80/slask-catalog/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type RabbitTracking struct {
	country    string
	connection *amqp.Connection
	logger     *zap.Logger
}

func NewRabbitTracking(url, country string, logger *zap.Logger) (*RabbitTracking, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ret := RabbitTracking{
		country: country,
		logger:  logger,
	}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	defer ch.Close()
	if err := messaging.DefineTopic(ch, messaging.GlobalPrefix, messaging.SearchTopic); err != nil {
		conn.Close()
		return err
	}
	t.connection = conn
	return nil
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) TrackSearch(event SearchEvent) error {
	if event.Country == "" {
		event.Country = t.country
	}
	err := messaging.Send(t.connection, messaging.GlobalPrefix, messaging.SearchTopic, event)
	if err != nil {
		t.logger.Warn("error sending search event", zap.String("session", event.SessionId), zap.Error(err))
	}
	return err
}
