package handler

import (
	"fmt"
	"net/http"

	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/Astemirdum/lumina-library/library/internal/query"
	"github.com/labstack/echo/v4"
)

// @Summary      List books
// @Description  Catalog view filtered by search text, category and status, optionally sorted
// @Tags         books
// @Produce      json
// @Param        search    query  string  false  "case-insensitive match on title, author, shelf and tags"
// @Param        category  query  string  false  "category or All"
// @Param        status    query  string  false  "available, loaned, reserved or All"
// @Param        sort      query  string  false  "none, shelf-asc, year-desc or year-asc"
// @Success      200  {array}   model.Book
// @Failure      400  {object}  echo.HTTPError
// @Router       /books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	status, ok := model.ParseStatusFilter(c.QueryParam("status"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	f := query.Filter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Status:   status,
		Sort:     model.ParseSortMode(c.QueryParam("sort")),
	}

	books, err := h.ledgerSvc.ListBooks(c.Request().Context(), f)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// @Summary      Register book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      model.NewBook  true  "book"
// @Success      201      {object}  model.Book
// @Failure      400      {object}  echo.HTTPError
// @Router       /books [post]
func (h *Handler) AddBook(c echo.Context) error {
	var req model.NewBook
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.ledgerSvc.AddBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.ledgerSvc.GetBook(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// @Summary      Check out book
// @Description  Lends an available book. The due date must fall within the loan window.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        bookId   path      string                 true  "book id"
// @Param        payload  body      model.CheckOutRequest  true  "borrower and due date"
// @Success      201      {object}  model.Loan
// @Failure      400      {object}  echo.HTTPError
// @Router       /books/{bookId}/checkout [post]
func (h *Handler) CheckOut(c echo.Context) error {
	var req model.CheckOutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.BookID = c.Param("bookId")

	if !req.DueDate.IsZero() {
		earliest, latest := model.DueDateWindow(model.Today(h.now()))
		if req.DueDate.Before(earliest) || req.DueDate.After(latest) {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("due date must be between %s and %s", earliest, latest))
		}
	}

	loan, err := h.ledgerSvc.CheckOut(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// @Summary      Analyze book
// @Description  Structured analysis of the book description. Empty object when the assistant is unavailable.
// @Tags         books
// @Produce      json
// @Param        bookId  path      string  true  "book id"
// @Success      200     {object}  model.Analysis
// @Failure      404     {object}  echo.HTTPError
// @Router       /books/{bookId}/analysis [post]
func (h *Handler) AnalyzeBook(c echo.Context) error {
	ctx := c.Request().Context()
	book, err := h.ledgerSvc.GetBook(ctx, c.Param("bookId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, h.assistantSvc.Analyze(ctx, book.Description))
}

func (h *Handler) Categories(c echo.Context) error {
	categories, err := h.ledgerSvc.Categories(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.ledgerSvc.Dashboard(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}
