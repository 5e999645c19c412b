package provider

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/triage/triage/pkg/pagination"
)

// Handler exposes the read-only directory queries over HTTP.
type Handler struct {
	dir *Directory
	rec *Recommender
}

func NewHandler(dir *Directory, rec *Recommender) *Handler {
	return &Handler{dir: dir, rec: rec}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/hospitals", h.ListHospitals)
	api.GET("/hospitals/nearby", h.NearbyHospitals)
	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/partner/:partnerId", h.PartnerDoctors)
}

func (h *Handler) ListHospitals(c echo.Context) error {
	var hospitals []Hospital
	if specialty := c.QueryParam("specialty"); specialty != "" {
		hospitals = h.dir.HospitalsBySpecialty(specialty)
	} else {
		hospitals = h.dir.Hospitals()
	}

	pg := pagination.FromContext(c)
	page := paginate(hospitals, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(hospitals), pg.Limit, pg.Offset))
}

func (h *Handler) NearbyHospitals(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lng must be a number")
	}
	emergencyOnly, _ := strconv.ParseBool(c.QueryParam("emergency"))

	hospitals := h.rec.FindNearbyHospitals(Location{Lat: lat, Lng: lng}, emergencyOnly)
	return c.JSON(http.StatusOK, hospitals)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	var doctors []Doctor
	if specialty := c.QueryParam("specialty"); specialty != "" {
		doctors = h.dir.DoctorsBySpecialty(specialty)
	} else {
		doctors = h.dir.Doctors()
	}

	pg := pagination.FromContext(c)
	page := paginate(doctors, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(doctors), pg.Limit, pg.Offset))
}

func (h *Handler) PartnerDoctors(c echo.Context) error {
	partnerID := c.Param("partnerId")
	doctors := h.dir.PartnerDoctors(partnerID)
	if doctors == nil {
		doctors = []Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

func paginate[T any](items []T, pg pagination.Params) []T {
	if pg.Offset >= len(items) {
		return []T{}
	}
	end := pg.Offset + pg.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[pg.Offset:end]
}
