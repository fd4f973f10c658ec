package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/lumina-library/library/internal/errs"
	"github.com/Astemirdum/lumina-library/library/internal/handler"
	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/Astemirdum/lumina-library/library/internal/query"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/lumina-library/library/internal/handler/mocks"
)

var today = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type mocks struct {
	ledger    *service_mocks.MockLedgerService
	assistant *service_mocks.MockAssistantService
}

type request struct {
	method string
	target string
	body   string
}

type response struct {
	expectedCode int
	expectedBody string
}

type testCase struct {
	name         string
	mockBehavior func(m mocks)
	request      request
	response     response
}

func run(t *testing.T, tests []testCase) {
	t.Helper()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			m := mocks{
				ledger:    service_mocks.NewMockLedgerService(c),
				assistant: service_mocks.NewMockAssistantService(c),
			}
			h := handler.New(m.ledger, m.assistant, zap.NewNop(), handler.WithClock(func() time.Time { return today }))
			e := h.NewRouter()

			var body io.Reader = http.NoBody
			if tt.request.body != "" {
				body = strings.NewReader(tt.request.body)
			}
			r := httptest.NewRequest(tt.request.method, tt.request.target, body)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(m)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func noCalls(mocks) {}

var dune = model.Book{
	ID:          "b4",
	Title:       "Dune",
	Author:      "Frank Herbert",
	ISBN:        "9780441172719",
	Category:    "Sci-Fi",
	Tags:        []string{"sci-fi"},
	Status:      model.BookAvailable,
	Description: "Desert planet.",
	CoverURL:    "http://cover",
	PublishYear: 1965,
	Shelf:       "B-10",
}

const duneJSON = `{"id":"b4","title":"Dune","author":"Frank Herbert","isbn":"9780441172719","category":"Sci-Fi",` +
	`"tags":["sci-fi"],"status":"available","description":"Desert planet.","coverUrl":"http://cover","publishYear":1965,"shelf":"B-10"}`

var aliceLoan = model.Loan{
	ID:            "l1",
	BookID:        "b4",
	BorrowerName:  "Alice",
	BorrowerPhone: "5551234567",
	LoanDate:      model.MustParseDate("2024-03-15"),
	DueDate:       model.MustParseDate("2024-03-20"),
	Status:        model.LoanActive,
}

const aliceLoanJSON = `{"id":"l1","bookId":"b4","borrowerName":"Alice","borrowerPhone":"5551234567",` +
	`"loanDate":"2024-03-15","dueDate":"2024-03-20","status":"active"}`

func TestHandler_Health(t *testing.T) {
	run(t, []testCase{{
		name:         "ok",
		mockBehavior: noCalls,
		request:      request{method: http.MethodGet, target: "/manage/health"},
		response:     response{expectedCode: http.StatusOK, expectedBody: "OK"},
	}})
}

func TestHandler_ListBooks(t *testing.T) {
	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().
					ListBooks(gomock.Any(), query.Filter{
						Search:   "dune",
						Category: "Sci-Fi",
						Status:   model.OnlyStatus(model.BookAvailable),
						Sort:     model.SortYearDesc,
					}).
					Return([]model.Book{dune}, nil)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books?search=dune&category=Sci-Fi&status=available&sort=year-desc"},
			response: response{expectedCode: http.StatusOK, expectedBody: "[" + duneJSON + "]"},
		},
		{
			name: "unknown sort falls back to none",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().
					ListBooks(gomock.Any(), query.Filter{Status: model.AnyStatus, Sort: model.SortNone}).
					Return([]model.Book{}, nil)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books?sort=title&status=All"},
			response: response{expectedCode: http.StatusOK, expectedBody: "[]"},
		},
		{
			name:         "err. invalid status",
			mockBehavior: noCalls,
			request:      request{method: http.MethodGet, target: "/api/v1/books?status=lost"},
			response:     response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"status is invalid"}`},
		},
		{
			name: "err. internal",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().ListBooks(gomock.Any(), gomock.Any()).Return(nil, errors.New("store internal"))
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books"},
			response: response{expectedCode: http.StatusInternalServerError, expectedBody: `{"message":"store internal"}`},
		},
	})
}

func TestHandler_AddBook(t *testing.T) {
	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().
					AddBook(gomock.Any(), model.NewBook{Title: "Dune", Author: "Frank Herbert", Shelf: "B-10", Tags: []string{"sci-fi"}}).
					Return(dune, nil)
			},
			request: request{
				method: http.MethodPost,
				target: "/api/v1/books",
				body:   `{"title":"Dune","author":"Frank Herbert","shelf":"B-10","tags":["sci-fi"]}`,
			},
			response: response{expectedCode: http.StatusCreated, expectedBody: duneJSON},
		},
		{
			name: "err. missing fields",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().
					AddBook(gomock.Any(), model.NewBook{Author: "Frank Herbert"}).
					Return(model.Book{}, errs.Validation("required fields are missing", "title", "shelf"))
			},
			request:  request{method: http.MethodPost, target: "/api/v1/books", body: `{"author":"Frank Herbert"}`},
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"required fields are missing: title, shelf"}`},
		},
		{
			name:         "err. malformed body",
			mockBehavior: noCalls,
			request:      request{method: http.MethodPost, target: "/api/v1/books", body: `{"title":`},
			response:     response{expectedCode: http.StatusBadRequest},
		},
	})
}

func TestHandler_GetBook(t *testing.T) {
	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().GetBook(gomock.Any(), "b4").Return(dune, nil)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books/b4"},
			response: response{expectedCode: http.StatusOK, expectedBody: duneJSON},
		},
		{
			name: "err. not found",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().GetBook(gomock.Any(), "nope").Return(model.Book{}, errs.ErrNotFound)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books/nope"},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"message":"not found"}`},
		},
	})
}

func TestHandler_CheckOut(t *testing.T) {
	checkout := func(due string) request {
		return request{
			method: http.MethodPost,
			target: "/api/v1/books/b4/checkout",
			body:   `{"borrowerName":"Alice","borrowerPhone":"5551234567","dueDate":"` + due + `"}`,
		}
	}
	want := func(due string) model.CheckOutRequest {
		return model.CheckOutRequest{
			BookID:        "b4",
			BorrowerName:  "Alice",
			BorrowerPhone: "5551234567",
			DueDate:       model.MustParseDate(due),
		}
	}
	const windowErr = `{"message":"due date must be between 2024-03-16 and 2024-03-29"}`

	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().CheckOut(gomock.Any(), want("2024-03-20")).Return(aliceLoan, nil)
			},
			request:  checkout("2024-03-20"),
			response: response{expectedCode: http.StatusCreated, expectedBody: aliceLoanJSON},
		},
		{
			name: "ok. window edges",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().CheckOut(gomock.Any(), want("2024-03-29")).Return(aliceLoan, nil)
			},
			request:  checkout("2024-03-29"),
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name: "ok. earliest",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().CheckOut(gomock.Any(), want("2024-03-16")).Return(aliceLoan, nil)
			},
			request:  checkout("2024-03-16"),
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name:         "err. due today",
			mockBehavior: noCalls,
			request:      checkout("2024-03-15"),
			response:     response{expectedCode: http.StatusBadRequest, expectedBody: windowErr},
		},
		{
			name:         "err. due beyond window",
			mockBehavior: noCalls,
			request:      checkout("2024-03-30"),
			response:     response{expectedCode: http.StatusBadRequest, expectedBody: windowErr},
		},
		{
			name: "err. bad phone",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().CheckOut(gomock.Any(), gomock.Any()).
					Return(model.Loan{}, errs.Validation("invalid check-out request", "borrowerPhone"))
			},
			request:  checkout("2024-03-20"),
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"invalid check-out request: borrowerPhone"}`},
		},
		{
			name: "err. book not available",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().CheckOut(gomock.Any(), want("2024-03-20")).
					Return(model.Loan{}, errs.Validation("book is not available", "bookId"))
			},
			request:  checkout("2024-03-20"),
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"book is not available: bookId"}`},
		},
		{
			name:         "err. malformed date",
			mockBehavior: noCalls,
			request:      checkout("20/03/2024"),
			response:     response{expectedCode: http.StatusBadRequest},
		},
	})
}

func TestHandler_AnalyzeBook(t *testing.T) {
	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().GetBook(gomock.Any(), "b4").Return(dune, nil)
				m.assistant.EXPECT().Analyze(gomock.Any(), "Desert planet.").
					Return(model.Analysis{Genre: "Science Fiction", PotentialThemes: []string{"ecology"}})
			},
			request:  request{method: http.MethodPost, target: "/api/v1/books/b4/analysis"},
			response: response{expectedCode: http.StatusOK, expectedBody: `{"genre":"Science Fiction","potentialThemes":["ecology"]}`},
		},
		{
			name: "ok. assistant unavailable",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().GetBook(gomock.Any(), "b4").Return(dune, nil)
				m.assistant.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(model.Analysis{})
			},
			request:  request{method: http.MethodPost, target: "/api/v1/books/b4/analysis"},
			response: response{expectedCode: http.StatusOK, expectedBody: `{}`},
		},
		{
			name: "err. not found",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().GetBook(gomock.Any(), "nope").Return(model.Book{}, errs.ErrNotFound)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/books/nope/analysis"},
			response: response{expectedCode: http.StatusNotFound},
		},
	})
}

func TestHandler_Categories(t *testing.T) {
	run(t, []testCase{{
		name: "ok",
		mockBehavior: func(m mocks) {
			m.ledger.EXPECT().Categories(gomock.Any()).Return([]string{"Fiction", "Sci-Fi"}, nil)
		},
		request:  request{method: http.MethodGet, target: "/api/v1/categories"},
		response: response{expectedCode: http.StatusOK, expectedBody: `["Fiction","Sci-Fi"]`},
	}})
}

func TestHandler_ListLoans(t *testing.T) {
	run(t, []testCase{{
		name: "ok",
		mockBehavior: func(m mocks) {
			m.ledger.EXPECT().ListLoans(gomock.Any()).Return([]model.LoanDetails{
				{Loan: aliceLoan, BookTitle: "Dune", Shelf: "B-10", CoverURL: "http://cover"},
			}, nil)
		},
		request: request{method: http.MethodGet, target: "/api/v1/loans"},
		response: response{
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":"l1","bookId":"b4","borrowerName":"Alice","borrowerPhone":"5551234567",` +
				`"loanDate":"2024-03-15","dueDate":"2024-03-20","status":"active","bookTitle":"Dune","shelf":"B-10","coverUrl":"http://cover"}]`,
		},
	}})
}

func TestHandler_Return(t *testing.T) {
	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().Return(gomock.Any(), "l1").Return(nil)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/loans/l1/return"},
			response: response{expectedCode: http.StatusNoContent},
		},
		{
			name: "err. internal",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().Return(gomock.Any(), "l1").Return(errors.New("boom"))
			},
			request:  request{method: http.MethodPost, target: "/api/v1/loans/l1/return"},
			response: response{expectedCode: http.StatusInternalServerError, expectedBody: `{"message":"boom"}`},
		},
	})
}

func TestHandler_Renew(t *testing.T) {
	renewed := aliceLoan
	renewed.DueDate = model.MustParseDate("2024-03-25")

	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().Renew(gomock.Any(), "l1", 5).Return(renewed, true, nil)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/loans/l1/renew", body: `{"days":5}`},
			response: response{expectedCode: http.StatusOK, expectedBody: strings.Replace(aliceLoanJSON, "2024-03-20", "2024-03-25", 1)},
		},
		{
			name: "ok. unknown loan",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().Renew(gomock.Any(), "nope", 3).Return(model.Loan{}, false, nil)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/loans/nope/renew", body: `{"days":3}`},
			response: response{expectedCode: http.StatusNoContent},
		},
		{
			name: "err. days",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().Renew(gomock.Any(), "l1", 0).
					Return(model.Loan{}, false, errs.Validation("renewal days must be positive", "days"))
			},
			request:  request{method: http.MethodPost, target: "/api/v1/loans/l1/renew", body: `{}`},
			response: response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"renewal days must be positive: days"}`},
		},
	})
}

func TestHandler_MarkOverdue(t *testing.T) {
	overdue := aliceLoan
	overdue.Status = model.LoanOverdue

	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().MarkOverdue(gomock.Any(), "l1").Return(overdue, true, nil)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/loans/l1/overdue"},
			response: response{expectedCode: http.StatusOK, expectedBody: strings.Replace(aliceLoanJSON, "active", "overdue", 1)},
		},
		{
			name: "ok. unknown loan",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().MarkOverdue(gomock.Any(), "nope").Return(model.Loan{}, false, nil)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/loans/nope/overdue"},
			response: response{expectedCode: http.StatusNoContent},
		},
	})
}

func TestHandler_Dashboard(t *testing.T) {
	run(t, []testCase{{
		name: "ok",
		mockBehavior: func(m mocks) {
			m.ledger.EXPECT().Dashboard(gomock.Any()).Return(model.Dashboard{
				RegisteredItems: 5, CheckedOut: 2, OverdueReturns: 1, AvailableStock: 3,
				Categories: []model.CategoryCount{{Name: "Sci-Fi", Value: 2}},
			}, nil)
		},
		request: request{method: http.MethodGet, target: "/api/v1/dashboard"},
		response: response{
			expectedCode: http.StatusOK,
			expectedBody: `{"registeredItems":5,"checkedOut":2,"overdueReturns":1,"availableStock":3,"categories":[{"name":"Sci-Fi","value":2}]}`,
		},
	}})
}

func TestHandler_Assistant(t *testing.T) {
	run(t, []testCase{
		{
			name: "history",
			mockBehavior: func(m mocks) {
				m.assistant.EXPECT().History().Return([]model.Message{{Role: model.RoleAssistant, Text: "Hello!"}})
			},
			request:  request{method: http.MethodGet, target: "/api/v1/assistant/messages"},
			response: response{expectedCode: http.StatusOK, expectedBody: `[{"role":"assistant","text":"Hello!"}]`},
		},
		{
			name: "ask",
			mockBehavior: func(m mocks) {
				m.assistant.EXPECT().Ask(gomock.Any(), "space books?").
					Return(model.Message{Role: model.RoleAssistant, Text: "Try Dune."}, true, nil)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/assistant/messages", body: `{"text":"space books?"}`},
			response: response{expectedCode: http.StatusOK, expectedBody: `{"role":"assistant","text":"Try Dune."}`},
		},
		{
			name: "ask. blank ignored",
			mockBehavior: func(m mocks) {
				m.assistant.EXPECT().Ask(gomock.Any(), "  ").Return(model.Message{}, false, nil)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/assistant/messages", body: `{"text":"  "}`},
			response: response{expectedCode: http.StatusNoContent},
		},
		{
			name: "err. busy",
			mockBehavior: func(m mocks) {
				m.assistant.EXPECT().Ask(gomock.Any(), "again").Return(model.Message{}, false, errs.ErrAssistantBusy)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/assistant/messages", body: `{"text":"again"}`},
			response: response{expectedCode: http.StatusConflict, expectedBody: `{"message":"assistant is busy with another request"}`},
		},
	})
}

func TestHandler_Reset(t *testing.T) {
	run(t, []testCase{
		{
			name: "ok",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().Reset(gomock.Any()).Return(nil)
				m.assistant.EXPECT().Reset()
			},
			request:  request{method: http.MethodPost, target: "/api/v1/ledger/reset"},
			response: response{expectedCode: http.StatusNoContent},
		},
		{
			name: "err. internal",
			mockBehavior: func(m mocks) {
				m.ledger.EXPECT().Reset(gomock.Any()).Return(errors.New("boom"))
			},
			request:  request{method: http.MethodPost, target: "/api/v1/ledger/reset"},
			response: response{expectedCode: http.StatusInternalServerError},
		},
	})
}
