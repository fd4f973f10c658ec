package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const LedgerTopic = "ledger.loans"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

// Enabled reports whether any broker is configured.
func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type EventType string

const (
	EventCheckOut EventType = "CHECKOUT"
	EventReturn   EventType = "RETURN"
	EventRenew    EventType = "RENEW"
	EventOverdue  EventType = "OVERDUE"
)

// LoanEvent is published for every lending lifecycle mutation.
type LoanEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	EventType    EventType `json:"eventType"`
	LoanID       string    `json:"loanId"`
	BookID       string    `json:"bookId"`
	BorrowerName string    `json:"borrowerName"`
	DueDate      string    `json:"dueDate"`
}
