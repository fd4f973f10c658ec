package handler

import (
	"net/http"
	"time"

	"github.com/Astemirdum/lumina-library/library/internal/errs"
	md "github.com/Astemirdum/lumina-library/pkg/middleware"
	"github.com/Astemirdum/lumina-library/pkg/validate"
	_ "github.com/Astemirdum/lumina-library/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	ledgerSvc    LedgerService
	assistantSvc AssistantService
	log          *zap.Logger
	now          func() time.Time
}

type Option func(*Handler)

// WithClock sets the clock the due date window is computed from.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func New(ledgerSvc LedgerService, assistantSvc AssistantService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		ledgerSvc:    ledgerSvc,
		assistantSvc: assistantSvc,
		log:          log.Named("handler"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/books", h.ListBooks)
	api.POST("/books", h.AddBook)
	api.GET("/books/:bookId", h.GetBook)
	api.POST("/books/:bookId/checkout", h.CheckOut)
	api.POST("/books/:bookId/analysis", h.AnalyzeBook)
	api.GET("/categories", h.Categories)

	api.GET("/loans", h.ListLoans)
	api.POST("/loans/:loanId/return", h.Return)
	api.POST("/loans/:loanId/renew", h.Renew)
	api.POST("/loans/:loanId/overdue", h.MarkOverdue)

	api.GET("/dashboard", h.Dashboard)

	api.GET("/assistant/messages", h.History)
	api.POST("/assistant/messages", h.Ask)

	api.POST("/ledger/reset", h.Reset)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps a service error onto the response status.
func (h *Handler) httpError(err error) error {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrAssistantBusy):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	h.log.Error("internal", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// @Summary      Reset ledger
// @Description  Restores the seed catalog and loans and clears the assistant conversation
// @Tags         ledger
// @Success      204
// @Failure      500  {object}  echo.HTTPError
// @Router       /ledger/reset [post]
func (h *Handler) Reset(c echo.Context) error {
	if err := h.ledgerSvc.Reset(c.Request().Context()); err != nil {
		return h.httpError(err)
	}
	h.assistantSvc.Reset()
	return c.NoContent(http.StatusNoContent)
}
