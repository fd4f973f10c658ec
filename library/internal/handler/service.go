package handler

import (
	"context"

	"github.com/Astemirdum/lumina-library/library/internal/assistant"
	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/Astemirdum/lumina-library/library/internal/query"
	"github.com/Astemirdum/lumina-library/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LedgerService interface {
	AddBook(ctx context.Context, req model.NewBook) (model.Book, error)
	GetBook(ctx context.Context, bookID string) (model.Book, error)
	ListBooks(ctx context.Context, f query.Filter) ([]model.Book, error)
	Categories(ctx context.Context) ([]string, error)
	ListLoans(ctx context.Context) ([]model.LoanDetails, error)
	Dashboard(ctx context.Context) (model.Dashboard, error)
	Reset(ctx context.Context) error

	CheckOut(ctx context.Context, req model.CheckOutRequest) (model.Loan, error)
	Return(ctx context.Context, loanID string) error
	Renew(ctx context.Context, loanID string, days int) (model.Loan, bool, error)
	MarkOverdue(ctx context.Context, loanID string) (model.Loan, bool, error)
}

var _ LedgerService = (*service.Service)(nil)

type AssistantService interface {
	History() []model.Message
	Ask(ctx context.Context, text string) (model.Message, bool, error)
	Analyze(ctx context.Context, description string) model.Analysis
	Reset()
}

var _ AssistantService = (*assistant.Assistant)(nil)
