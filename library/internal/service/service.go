package service

import (
	"context"
	"sync"
	"time"

	libraryRepo "github.com/Astemirdum/lumina-library/library/internal/repository"
	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/Astemirdum/lumina-library/pkg/kafka"
	"github.com/Astemirdum/lumina-library/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventLog receives one event per lending mutation.
type EventLog interface {
	Log(ctx context.Context, event kafka.LoanEvent) error
}

type nopLog struct{}

func (nopLog) Log(context.Context, kafka.LoanEvent) error { return nil }

type Service struct {
	log  *zap.Logger
	repo libraryRepo.Repository

	// mu is the transaction boundary of the lending lifecycle.
	mu       sync.Mutex
	validate *validator.Validate
	events   EventLog
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithEventLog(events EventLog) Option {
	return func(s *Service) { s.events = events }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(repo libraryRepo.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:      log.Named("service"),
		repo:     repo,
		validate: validate.New(),
		events:   nopLog{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() model.Date {
	return model.Today(s.now())
}

func (s *Service) publish(ctx context.Context, typ kafka.EventType, loan model.Loan) {
	event := kafka.LoanEvent{
		Timestamp:    s.now().UTC(),
		EventType:    typ,
		LoanID:       loan.ID,
		BookID:       loan.BookID,
		BorrowerName: loan.BorrowerName,
		DueDate:      loan.DueDate.String(),
	}
	if err := s.events.Log(ctx, event); err != nil {
		s.log.Warn("events.Log", zap.String("type", string(typ)), zap.String("loan", loan.ID), zap.Error(err))
	}
}
