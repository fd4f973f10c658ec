package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type askRequest struct {
	Text string `json:"text"`
}

func (h *Handler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, h.assistantSvc.History())
}

// @Summary      Ask the assistant
// @Description  Sends a reader question. Blank text is ignored with 204; a second question while one is pending gets 409.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        payload  body      askRequest  true  "question"
// @Success      200      {object}  model.Message
// @Success      204
// @Failure      409      {object}  echo.HTTPError
// @Router       /assistant/messages [post]
func (h *Handler) Ask(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	reply, ok, err := h.assistantSvc.Ask(c.Request().Context(), req.Text)
	if err != nil {
		return h.httpError(err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, reply)
}
