package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/Astemirdum/lumina-library/library/internal/query"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AddBook registers a new available book in front of the catalog.
func (s *Service) AddBook(ctx context.Context, req model.NewBook) (model.Book, error) {
	book := model.Book{
		ID:          s.newID(),
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		ISBN:        strings.TrimSpace(req.ISBN),
		Category:    strings.TrimSpace(req.Category),
		Tags:        model.NormalizeTags(req.Tags),
		Status:      model.BookAvailable,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		PublishYear: req.PublishYear,
		Shelf:       strings.TrimSpace(req.Shelf),
	}
	if book.ISBN == "" {
		book.ISBN = fmt.Sprintf("REF-%d", rand.IntN(1000000))
	}
	if book.Category == "" {
		book.Category = model.DefaultCategory
	}
	if book.CoverURL == "" {
		book.CoverURL = model.DefaultCoverURL
	}
	if book.PublishYear == 0 {
		book.PublishYear = s.now().Year()
	}

	if err := s.repo.AddBook(ctx, book); err != nil {
		return model.Book{}, err
	}
	s.log.Info("book registered", zap.String("id", book.ID), zap.String("title", book.Title))
	return book, nil
}

func (s *Service) GetBook(ctx context.Context, bookID string) (model.Book, error) {
	return s.repo.GetBook(ctx, bookID)
}

func (s *Service) ListBooks(ctx context.Context, f query.Filter) ([]model.Book, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	return query.Apply(books, f), nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	return query.Categories(books), nil
}

// ListLoans returns the lending log: every loan with the book it holds.
func (s *Service) ListLoans(ctx context.Context) ([]model.LoanDetails, error) {
	loans, err := s.repo.ListLoans(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list loans")
	}
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	byID := make(map[string]model.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	items := make([]model.LoanDetails, 0, len(loans))
	for _, l := range loans {
		b := byID[l.BookID]
		items = append(items, model.LoanDetails{
			Loan:      l,
			BookTitle: b.Title,
			Shelf:     b.Shelf,
			CoverURL:  b.CoverURL,
		})
	}
	return items, nil
}

func (s *Service) Dashboard(ctx context.Context) (model.Dashboard, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return model.Dashboard{}, errors.Wrap(err, "list books")
	}
	loans, err := s.repo.ListLoans(ctx)
	if err != nil {
		return model.Dashboard{}, errors.Wrap(err, "list loans")
	}

	d := model.Dashboard{
		RegisteredItems: len(books),
		Categories:      query.CategoryBreakdown(books),
	}
	for _, b := range books {
		switch b.Status {
		case model.BookLoaned:
			d.CheckedOut++
		case model.BookAvailable:
			d.AvailableStock++
		}
	}
	for _, l := range loans {
		if l.Status == model.LoanOverdue {
			d.OverdueReturns++
		}
	}
	return d, nil
}

// Reset drops the session state and restores the seed catalog.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Reset(ctx); err != nil {
		return errors.Wrap(err, "reset")
	}
	s.log.Info("ledger reset")
	return nil
}
