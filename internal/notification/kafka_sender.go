package notification

import (
	"context"

	"github.com/glambook/service-booking/pkg/kafka"
)

// TopicPushNotifications carries push payloads for the platform's
// notification gateway to deliver.
const TopicPushNotifications = "notification.push"

// pushEnvelope is the payload published per device token.
type pushEnvelope struct {
	Token   string  `json:"token"`
	Message Message `json:"message"`
}

// KafkaPushSender hands push payloads to the notification gateway via Kafka.
type KafkaPushSender struct {
	producer *kafka.Producer
}

// NewKafkaPushSender creates a KafkaPushSender on the given producer.
func NewKafkaPushSender(producer *kafka.Producer) *KafkaPushSender {
	return &KafkaPushSender{producer: producer}
}

// Send publishes one push payload for the given device token.
func (s *KafkaPushSender) Send(ctx context.Context, token string, msg Message) error {
	evt, err := kafka.NewCloudEvent("service-booking", "notification.push.requested", pushEnvelope{
		Token:   token,
		Message: msg,
	})
	if err != nil {
		return err
	}
	return s.producer.PublishEvent(ctx, TopicPushNotifications, evt)
}
