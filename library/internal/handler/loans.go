package handler

import (
	"net/http"

	"github.com/Astemirdum/lumina-library/library/internal/model"
	"github.com/labstack/echo/v4"
)

// @Summary      Lending log
// @Tags         loans
// @Produce      json
// @Success      200  {array}  model.LoanDetails
// @Router       /loans [get]
func (h *Handler) ListLoans(c echo.Context) error {
	loans, err := h.ledgerSvc.ListLoans(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// Return answers 204 for unknown loans too.
func (h *Handler) Return(c echo.Context) error {
	if err := h.ledgerSvc.Return(c.Request().Context(), c.Param("loanId")); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Renew loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        loanId   path      string              true  "loan id"
// @Param        payload  body      model.RenewRequest  true  "days to extend"
// @Success      200      {object}  model.Loan
// @Success      204      "unknown loan"
// @Failure      400      {object}  echo.HTTPError
// @Router       /loans/{loanId}/renew [post]
func (h *Handler) Renew(c echo.Context) error {
	var req model.RenewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, ok, err := h.ledgerSvc.Renew(c.Request().Context(), c.Param("loanId"), req.Days)
	if err != nil {
		return h.httpError(err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) MarkOverdue(c echo.Context) error {
	loan, ok, err := h.ledgerSvc.MarkOverdue(c.Request().Context(), c.Param("loanId"))
	if err != nil {
		return h.httpError(err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, loan)
}
