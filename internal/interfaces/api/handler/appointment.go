package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tattooage/internal/application/dto"
	"tattooage/internal/application/service"
	"tattooage/internal/domain/constant"
	appErrors "tattooage/internal/pkg/errors"
	"tattooage/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AppointmentHandler handles the appointment REST endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
	log                logger.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointmentService service.AppointmentService, log logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		log:                log,
	}
}

// Create books a new appointment.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req dto.CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	appointment, err := h.appointmentService.Create(c.Request().Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ToAppointmentResponse(appointment))
}

// Get retrieves a single appointment.
func (h *AppointmentHandler) Get(c echo.Context) error {
	id, err := h.appointmentID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}

	appointment, err := h.appointmentService.Get(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

// List retrieves appointments, optionally filtered by clientId or artistId
// query parameters.
func (h *AppointmentHandler) List(c echo.Context) error {
	var filter dto.ListAppointmentsFilter
	if v := c.QueryParam("clientId"); v != "" {
		clientID, err := parseUint(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid clientId"})
		}
		filter.ClientID = &clientID
	}
	if v := c.QueryParam("artistId"); v != "" {
		artistID, err := parseUint(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid artistId"})
		}
		filter.ArtistID = &artistID
	}

	appointments, err := h.appointmentService.List(c.Request().Context(), filter)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToAppointmentResponseList(appointments))
}

// Reschedule moves an appointment to a new date/time.
func (h *AppointmentHandler) Reschedule(c echo.Context) error {
	id, err := h.appointmentID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}

	var req dto.RescheduleAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	appointment, err := h.appointmentService.Reschedule(c.Request().Context(), id, req)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

// Confirm transitions an appointment to confirmed.
func (h *AppointmentHandler) Confirm(c echo.Context) error {
	return h.updateStatus(c, constant.StatusConfirmed)
}

// Cancel transitions an appointment to cancelled, dropping its reminder.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	return h.updateStatus(c, constant.StatusCancelled)
}

// Complete transitions an appointment to completed.
func (h *AppointmentHandler) Complete(c echo.Context) error {
	return h.updateStatus(c, constant.StatusCompleted)
}

// Delete removes an appointment.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := h.appointmentID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}

	if err := h.appointmentService.Delete(c.Request().Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AppointmentHandler) updateStatus(c echo.Context, status constant.AppointmentStatus) error {
	id, err := h.appointmentID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

func (h *AppointmentHandler) appointmentID(c echo.Context) (uint, error) {
	return parseUint(c.Param("id"))
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// mapError translates service errors to HTTP responses.
func (h *AppointmentHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appErrors.ErrAppointmentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
	case errors.Is(err, appErrors.ErrInvalidDateTime):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or start time"})
	case errors.Is(err, appErrors.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	default:
		h.log.Error(fmt.Sprintf("Unhandled error on %s %s", c.Request().Method, c.Path()), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
