package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	MediaExchange = "media.exchange"

	// UpdateStateQueue carries upload-state notifications published by the
	// transcoding stack. The consumer applies them through the same state
	// machine as the HTTP webhook.
	UpdateStateQueue      = "media.update_state"
	UpdateStateRoutingKey = "media.update_state"

	// StateChangedQueue fans out state transitions this service accepted, so
	// downstream systems (search index, notifications) can react.
	StateChangedQueue      = "media.state_changed"
	StateChangedRoutingKey = "media.state_changed"

	// XAPIQueue carries validated learning-analytics statements on their way
	// to the LRS forwarder.
	XAPIQueue      = "media.xapi"
	XAPIRoutingKey = "media.xapi"
)

// UpdateStateMessage mirrors the webhook body: the raw storage key, the
// reported state, model specific extras and the HMAC signature covering all
// of them. The broker is not a trust boundary; the signature is verified
// again on consumption.
type UpdateStateMessage struct {
	Key             string                     `json:"key"`
	State           string                     `json:"state"`
	Signature       string                     `json:"signature"`
	ExtraParameters map[string]json.RawMessage `json:"extraParameters,omitempty"`
	Timestamp       int64                      `json:"timestamp"`
}

// Resolutions extracts the encoded resolution ladder from ExtraParameters,
// returning nil when the message carries none.
func (m *UpdateStateMessage) Resolutions() ([]int, error) {
	raw, ok := m.ExtraParameters["resolutions"]
	if !ok {
		return nil, nil
	}
	var resolutions []int
	if err := json.Unmarshal(raw, &resolutions); err != nil {
		return nil, err
	}
	return resolutions, nil
}

// Extension extracts the detected file extension from ExtraParameters.
func (m *UpdateStateMessage) Extension() (string, error) {
	raw, ok := m.ExtraParameters["extension"]
	if !ok {
		return "", nil
	}
	var extension string
	if err := json.Unmarshal(raw, &extension); err != nil {
		return "", err
	}
	return extension, nil
}

// StateChangedMessage announces an accepted state transition.
type StateChangedMessage struct {
	Model     string `json:"model"`
	ObjectID  string `json:"object_id"`
	State     string `json:"state"`
	Stamp     string `json:"stamp,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// XAPIStatementMessage wraps one validated statement for the LRS forwarder.
type XAPIStatementMessage struct {
	VideoID   string          `json:"video_id"`
	Statement json.RawMessage `json:"statement"`
	Timestamp int64           `json:"timestamp"`
}

// MediaProduceService publishes media lifecycle messages.
type MediaProduceService struct {
	channel *amqp.Channel
}

func InitMediaProduceService(channel *amqp.Channel) *MediaProduceService {
	service := &MediaProduceService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		MediaExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Media exchange: " + err.Error())
	}

	queues := []struct {
		name       string
		routingKey string
	}{
		{UpdateStateQueue, UpdateStateRoutingKey},
		{StateChangedQueue, StateChangedRoutingKey},
		{XAPIQueue, XAPIRoutingKey},
	}

	for _, q := range queues {
		_, err = channel.QueueDeclare(
			q.name,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			panic("Failed to declare queue " + q.name + ": " + err.Error())
		}

		err = channel.QueueBind(
			q.name,
			q.routingKey,
			MediaExchange,
			false,
			nil,
		)
		if err != nil {
			panic("Failed to bind queue " + q.name + ": " + err.Error())
		}
	}

	return service
}

func (s *MediaProduceService) publish(ctx context.Context, routingKey string, body []byte) error {
	return s.channel.PublishWithContext(
		ctx,
		MediaExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}

// PublishStateChanged announces an accepted upload-state transition.
func (s *MediaProduceService) PublishStateChanged(ctx context.Context, msg StateChangedMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.publish(ctx, StateChangedRoutingKey, body)
}

// PublishXAPIStatement hands a validated statement to the LRS forwarder.
func (s *MediaProduceService) PublishXAPIStatement(ctx context.Context, msg XAPIStatementMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.publish(ctx, XAPIRoutingKey, body)
}
