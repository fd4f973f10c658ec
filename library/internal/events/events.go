package events

import (
	"context"

	"github.com/Astemirdum/lumina-library/pkg/kafka"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type loanLog struct {
	producer sarama.SyncProducer
	topic    string
}

// NewLoanLog publishes loan events to topic, keyed by loan id so that
// the events of one loan stay ordered within a partition.
func NewLoanLog(producer sarama.SyncProducer, topic string) *loanLog {
	return &loanLog{
		producer: producer,
		topic:    topic,
	}
}

func (l *loanLog) Log(_ context.Context, event kafka.LoanEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: l.topic,
		Key:   sarama.StringEncoder(event.LoanID),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = l.producer.SendMessage(msg); err != nil {
		return errors.Wrap(err, "send message")
	}
	return nil
}

type nopLog struct {
	log *zap.Logger
}

// NewNopLog drops events after a debug line. Used when no broker is configured.
func NewNopLog(log *zap.Logger) *nopLog {
	return &nopLog{log: log.Named("events")}
}

func (l *nopLog) Log(_ context.Context, event kafka.LoanEvent) error {
	l.log.Debug("loan event", zap.String("type", string(event.EventType)), zap.String("loan", event.LoanID))
	return nil
}
