package service

import (
	"context"

	"github.com/Astemirdum/lumina-library/library/internal/errs"
	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/Astemirdum/lumina-library/pkg/kafka"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CheckOut lends an available book. The book becomes loaned and a new active loan
// is appended to the log in the same step.
func (s *Service) CheckOut(ctx context.Context, req model.CheckOutRequest) (model.Loan, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.Loan{}, errs.FromValidator("invalid check-out request", err)
	}
	if req.DueDate.IsZero() {
		return model.Loan{}, errs.Validation("due date is required", "dueDate")
	}

	s.mu.Lock()
	loan, err := s.checkOut(ctx, req)
	s.mu.Unlock()
	if err != nil {
		return model.Loan{}, err
	}

	s.log.Info("checked out", zap.String("loan", loan.ID), zap.String("book", loan.BookID),
		zap.String("due", loan.DueDate.String()))
	s.publish(ctx, kafka.EventCheckOut, loan)
	return loan, nil
}

func (s *Service) checkOut(ctx context.Context, req model.CheckOutRequest) (model.Loan, error) {
	book, err := s.repo.GetBook(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Loan{}, errs.Validation("book is not available", "bookId")
		}
		return model.Loan{}, errors.Wrap(err, "get book")
	}
	if book.Status != model.BookAvailable {
		return model.Loan{}, errs.Validation("book is not available", "bookId")
	}

	loan := model.Loan{
		ID:            s.newID(),
		BookID:        book.ID,
		BorrowerName:  req.BorrowerName,
		BorrowerPhone: req.BorrowerPhone,
		LoanDate:      s.today(),
		DueDate:       req.DueDate,
		Status:        model.LoanActive,
	}
	if err = s.repo.UpsertLoan(ctx, loan); err != nil {
		return model.Loan{}, errors.Wrap(err, "upsert loan")
	}
	if err = s.repo.UpdateBookStatus(ctx, book.ID, model.BookLoaned); err != nil {
		if rmErr := s.repo.RemoveLoan(ctx, loan.ID); rmErr != nil {
			s.log.Error("rollback loan", zap.String("loan", loan.ID), zap.Error(rmErr))
		}
		return model.Loan{}, errors.Wrap(err, "update book status")
	}
	return loan, nil
}

// Return closes a loan: the loan leaves the log and its book is available again.
// An unknown loan id is a no-op.
func (s *Service) Return(ctx context.Context, loanID string) error {
	s.mu.Lock()
	loan, err := s.repo.GetLoan(ctx, loanID)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Debug("return of unknown loan", zap.String("loan", loanID))
			return nil
		}
		return errors.Wrap(err, "get loan")
	}
	err = s.returnLoan(ctx, loan)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Info("returned", zap.String("loan", loan.ID), zap.String("book", loan.BookID))
	loan.Status = model.LoanReturned
	s.publish(ctx, kafka.EventReturn, loan)
	return nil
}

func (s *Service) returnLoan(ctx context.Context, loan model.Loan) error {
	if err := s.repo.RemoveLoan(ctx, loan.ID); err != nil {
		return errors.Wrap(err, "remove loan")
	}
	err := s.repo.UpdateBookStatus(ctx, loan.BookID, model.BookAvailable)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return errors.Wrap(err, "update book status")
	}
	return nil
}

// Renew pushes the due date of a loan by days and reactivates it.
// ok is false when the loan does not exist.
func (s *Service) Renew(ctx context.Context, loanID string, days int) (loan model.Loan, ok bool, err error) {
	if days <= 0 {
		return model.Loan{}, false, errs.Validation("renewal days must be positive", "days")
	}

	loan, ok, err = s.updateLoan(ctx, loanID, func(l *model.Loan) {
		l.DueDate = l.DueDate.AddDays(days)
		l.Status = model.LoanActive
	})
	if err != nil || !ok {
		return loan, ok, err
	}

	s.log.Info("renewed", zap.String("loan", loan.ID), zap.Int("days", days),
		zap.String("due", loan.DueDate.String()))
	s.publish(ctx, kafka.EventRenew, loan)
	return loan, true, nil
}

// MarkOverdue flags an open loan as overdue. ok is false when the loan does not exist.
func (s *Service) MarkOverdue(ctx context.Context, loanID string) (loan model.Loan, ok bool, err error) {
	loan, ok, err = s.updateLoan(ctx, loanID, func(l *model.Loan) {
		l.Status = model.LoanOverdue
	})
	if err != nil || !ok {
		return loan, ok, err
	}

	s.log.Info("marked overdue", zap.String("loan", loan.ID))
	s.publish(ctx, kafka.EventOverdue, loan)
	return loan, true, nil
}

func (s *Service) updateLoan(ctx context.Context, loanID string, mutate func(*model.Loan)) (model.Loan, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, err := s.repo.GetLoan(ctx, loanID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Loan{}, false, nil
		}
		return model.Loan{}, false, errors.Wrap(err, "get loan")
	}
	mutate(&loan)
	if err = s.repo.UpsertLoan(ctx, loan); err != nil {
		return model.Loan{}, false, errors.Wrap(err, "upsert loan")
	}
	return loan, true, nil
}

// SweepOverdue marks every active loan whose due date has passed as overdue
// and returns how many loans changed.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	today := s.today()

	s.mu.Lock()
	loans, err := s.repo.ListLoans(ctx)
	if err != nil {
		s.mu.Unlock()
		return 0, errors.Wrap(err, "list loans")
	}
	var marked []model.Loan
	for _, l := range loans {
		if l.Status != model.LoanActive || !l.DueDate.Before(today) {
			continue
		}
		l.Status = model.LoanOverdue
		if err = s.repo.UpsertLoan(ctx, l); err != nil {
			s.mu.Unlock()
			return len(marked), errors.Wrap(err, "upsert loan")
		}
		marked = append(marked, l)
	}
	s.mu.Unlock()

	for _, l := range marked {
		s.publish(ctx, kafka.EventOverdue, l)
	}
	if len(marked) > 0 {
		s.log.Info("overdue sweep", zap.Int("marked", len(marked)))
	}
	return len(marked), nil
}
