package store

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "futsal.state"

// Fanout broadcasts saved envelopes to every other running instance over a
// RabbitMQ fanout exchange. Delivery is best-effort: a lost message only
// delays convergence until the next save.
type Fanout struct {
	Ch *amqp.Channel
}

func NewFanout(ch *amqp.Channel) (*Fanout, error) {
	err := ch.ExchangeDeclare(
		exchangeName, // name
		"fanout",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return nil, err
	}
	return &Fanout{Ch: ch}, nil
}

func (f *Fanout) Publish(env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return f.Ch.PublishWithContext(context.Background(),
		exchangeName, // exchange
		"",           // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{ContentType: "application/json", Body: body},
	)
}

// Subscribe binds an exclusive queue to the exchange and feeds every
// delivered envelope to fn. The returned function cancels the consumer.
func (f *Fanout) Subscribe(fn func(Envelope)) (func(), error) {
	q, err := f.Ch.QueueDeclare(
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
	if err := f.Ch.QueueBind(q.Name, "", exchangeName, false, nil); err != nil {
		return nil, err
	}
	msgs, err := f.Ch.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal(d.Body, &env); err != nil {
					log.Printf("fanout: dropping malformed envelope: %v", err)
					continue
				}
				fn(env)
			}
		}
	}()

	return func() { close(done) }, nil
}
