package queue

import (
	"context"
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
)

// CommitTopic carries one JSON CommitEvent per new commit, keyed by unit id
// so events for the same unit stay ordered within a partition.
const CommitTopic = "mts.commits"

var _ CommitQueue = (*KafkaCommitQueue)(nil)

type KafkaCommitQueue struct {
	producer *kafka.Producer
}

func NewKafkaCommitQueue(brokers string) (*KafkaCommitQueue, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return nil, err
	}

	q := &KafkaCommitQueue{producer: producer}

	go func() {
		for e := range producer.Events() {
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				logrus.Errorf("commit event delivery failed: %v", m.TopicPartition.Error)
			}
		}
	}()

	return q, nil
}

func (q *KafkaCommitQueue) PublishCommit(ctx context.Context, event *CommitEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := CommitTopic
	return q.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.UnitID.String()),
		Value:          payload,
	}, nil)
}

func (q *KafkaCommitQueue) Close() error {
	q.producer.Flush(5000)
	q.producer.Close()
	return nil
}
