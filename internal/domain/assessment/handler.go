package assessment

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/triage/triage/internal/domain/provider"
)

// AnalyzeRequest is the POST /assessments payload.
type AnalyzeRequest struct {
	Snapshot PatientSnapshot    `json:"snapshot"`
	Location *provider.Location `json:"location,omitempty"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assessments", h.Analyze)
}

func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.svc.Analyze(c.Request().Context(), req.Snapshot, req.Location)
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			return echo.NewHTTPError(http.StatusBadRequest, inputErr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}
