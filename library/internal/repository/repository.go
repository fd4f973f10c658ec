package repository

import (
	"context"
	"sync"

	"github.com/Astemirdum/lumina-library/library/internal/errs"
	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/Astemirdum/lumina-library/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Repository is the entity store of the ledger. It enforces no lending invariant;
// callers that mutate loans keep books and loans consistent.
type Repository interface {
	AddBook(ctx context.Context, book model.Book) error
	GetBook(ctx context.Context, bookID string) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpdateBookStatus(ctx context.Context, bookID string, status model.BookStatus) error

	UpsertLoan(ctx context.Context, loan model.Loan) error
	RemoveLoan(ctx context.Context, loanID string) error
	GetLoan(ctx context.Context, loanID string) (model.Loan, error)
	ListLoans(ctx context.Context) ([]model.Loan, error)
	FindOpenLoan(ctx context.Context, bookID string) (model.Loan, error)

	Reset(ctx context.Context) error
}

type repository struct {
	mu sync.RWMutex

	books     map[string]model.Book
	bookOrder []string
	loans     map[string]model.Loan
	loanOrder []string

	seed     Seed
	validate *validator.Validate
	log      *zap.Logger
}

func NewRepository(seed Seed, log *zap.Logger) (*repository, error) {
	r := &repository{
		seed:     seed,
		validate: validate.New(),
		log:      log.Named("repo"),
	}
	if err := r.Reset(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *repository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books = make(map[string]model.Book, len(r.seed.Books))
	r.bookOrder = make([]string, 0, len(r.seed.Books))
	for _, b := range r.seed.Books {
		r.books[b.ID] = cloneBook(b)
		r.bookOrder = append(r.bookOrder, b.ID)
	}
	r.loans = make(map[string]model.Loan, len(r.seed.Loans))
	r.loanOrder = make([]string, 0, len(r.seed.Loans))
	for _, l := range r.seed.Loans {
		r.loans[l.ID] = l
		r.loanOrder = append(r.loanOrder, l.ID)
	}
	r.log.Debug("Reset", zap.Int("books", len(r.books)), zap.Int("loans", len(r.loans)))
	return nil
}

// AddBook puts the book in front of the visible ordering.
func (r *repository) AddBook(_ context.Context, book model.Book) error {
	if err := r.validate.Struct(book); err != nil {
		return errs.FromValidator("required fields are missing", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ID]; ok {
		return errors.Errorf("book %s already exists", book.ID)
	}
	r.books[book.ID] = cloneBook(book)
	r.bookOrder = append([]string{book.ID}, r.bookOrder...)
	return nil
}

func (r *repository) GetBook(_ context.Context, bookID string) (model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[bookID]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return cloneBook(b), nil
}

func (r *repository) ListBooks(_ context.Context) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]model.Book, 0, len(r.bookOrder))
	for _, id := range r.bookOrder {
		items = append(items, cloneBook(r.books[id]))
	}
	return items, nil
}

func (r *repository) UpdateBookStatus(_ context.Context, bookID string, status model.BookStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[bookID]
	if !ok {
		return errs.ErrNotFound
	}
	b.Status = status
	r.books[bookID] = b
	return nil
}

func (r *repository) UpsertLoan(_ context.Context, loan model.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loans[loan.ID]; !ok {
		r.loanOrder = append(r.loanOrder, loan.ID)
	}
	r.loans[loan.ID] = loan
	return nil
}

func (r *repository) RemoveLoan(_ context.Context, loanID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loans[loanID]; !ok {
		return errs.ErrNotFound
	}
	delete(r.loans, loanID)
	for i, id := range r.loanOrder {
		if id == loanID {
			r.loanOrder = append(r.loanOrder[:i], r.loanOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *repository) GetLoan(_ context.Context, loanID string) (model.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loans[loanID]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	return l, nil
}

func (r *repository) ListLoans(_ context.Context) ([]model.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]model.Loan, 0, len(r.loanOrder))
	for _, id := range r.loanOrder {
		items = append(items, r.loans[id])
	}
	return items, nil
}

func (r *repository) FindOpenLoan(_ context.Context, bookID string) (model.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.loanOrder {
		if l := r.loans[id]; l.BookID == bookID && l.Status.Open() {
			return l, nil
		}
	}
	return model.Loan{}, errs.ErrNotFound
}

func cloneBook(b model.Book) model.Book {
	if b.Tags != nil {
		b.Tags = append([]string(nil), b.Tags...)
	}
	return b
}
