package queue

import (
	"log"

	"github.com/streadway/amqp"
)

// AMQPQueue is the RabbitMQ-backed Queue for split deployments where the
// tracking server and the interaction recorder run as separate processes.
// One durable queue per topic.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
	return q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

func (q *AMQPQueue) Publish(topic string, body []byte) error {
	queue, err := q.declare(topic)
	if err != nil {
		return err
	}
	return q.ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Subscribe consumes the topic's queue until the channel closes. Deliveries
// are acked whether or not the handler succeeds: a failed interaction write
// is logged and dropped, never retried against a caller that has already
// disconnected.
func (q *AMQPQueue) Subscribe(topic string, handler func(body []byte) error) error {
	queue, err := q.declare(topic)
	if err != nil {
		return err
	}

	msgs, err := q.ch.Consume(
		queue.Name,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				log.Printf("⚠️ %s handler failed: %v", topic, err)
			}
			d.Ack(false)
		}
	}()
	return nil
}

func (q *AMQPQueue) Close() error {
	if err := q.ch.Close(); err != nil {
		return err
	}
	return q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)
