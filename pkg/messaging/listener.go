package messaging

import (
	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

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
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
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

// Acker is the part of a delivery Consume needs.
type Acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Consume hands every message body to handler. Failing messages are dropped
// without requeue and consumption continues.
func Consume(msgs <-chan amqp.Delivery, topic ChangeTopic, handler func([]byte) error) {
	for d := range msgs {
		handle(&d, d.Body, topic, handler)
	}
}

func handle(d Acker, body []byte, topic ChangeTopic, handler func([]byte) error) {
	if err := handler(body); err != nil {
		log.Error().Err(err).Str("topic", string(topic)).Msg("error processing message")
		d.Nack(false, false)
		return
	}
	d.Ack(false)
}

func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, handler func([]byte) error) error {
	fc, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		Consume(msgs, topic, handler)
	}(fc)
	return nil
}

// DecodeInto returns a handler decoding json messages into a fresh T.
func DecodeInto[T any](fn func(*T) error) func([]byte) error {
	return func(body []byte) error {
		var value T
		if err := sonic.Unmarshal(body, &value); err != nil {
			return err
		}
		return fn(&value)
	}
}
