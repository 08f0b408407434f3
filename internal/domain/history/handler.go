package history

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/domain/directory"
	"github.com/HaadiMalik/Newark-Medical-Associates/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RoleNurse, auth.RoleSupport))
	read.GET("/patients/:id/illnesses", h.ListIllnesses)
	read.GET("/patients/:id/allergies", h.ListAllergies)
	read.GET("/patients/:id/medical-history", h.History)

	write := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RoleNurse))
	write.POST("/patients/:id/illnesses", h.AddIllness)
	write.POST("/patients/:id/allergies", h.AddAllergy)
}

func (h *Handler) AddIllness(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req AddIllnessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pi, err := h.svc.AddIllness(c.Request().Context(), patientID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEntry):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, directory.ErrPatientNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, pi)
}

func (h *Handler) AddAllergy(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req AddAllergyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pa, err := h.svc.AddAllergy(c.Request().Context(), patientID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEntry):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, directory.ErrPatientNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, pa)
}

func (h *Handler) ListIllnesses(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	illnesses, err := h.svc.ListIllnesses(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, directory.ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, illnesses)
}

func (h *Handler) ListAllergies(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	allergies, err := h.svc.ListAllergies(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, directory.ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, allergies)
}

func (h *Handler) History(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	mh, err := h.svc.History(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, directory.ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, mh)
}
