package notifier

import (
	"context"

	"pitstop/pkg/kafka"
	kafka_config "pitstop/pkg/kafka/config"
	"pitstop/pkg/logger"
)

const (
	DefaultTopic = "scheduling.events"

	eventSource = "pitstop-scheduler"
)

type kafkaNotifier struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaNotifier(cfg *kafka_config.Config, topic string, log *logger.Logger) (Notifier, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	producer, err := kafka.NewProducer(cfg, topic)
	if err != nil {
		return nil, err
	}

	log.Info("Kafka notifier initialized", "topic", topic, "brokers", cfg.Brokers)
	return &kafkaNotifier{
		producer: producer,
		log:      log,
	}, nil
}

func (n *kafkaNotifier) Close() error {
	return n.producer.Close()
}

func (n *kafkaNotifier) Publish(ctx context.Context, event Event) error {
	// Key by date so consumers see a date's events in admission order.
	key := event.Type
	if event.Appointment != nil {
		key = event.Appointment.Date
	}

	msg, err := kafka.NewEventMessage(key, event.Type, eventSource, event)
	if err != nil {
		return err
	}

	return n.producer.Publish(ctx, msg)
}
