package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type appointmentHandler struct {
	appointmentService portssvc.AppointmentSvcFacade
	errors             errorResponder
}

func newAppointmentHandler(as portssvc.AppointmentSvcFacade, errs errorResponder) *appointmentHandler {
	return &appointmentHandler{appointmentService: as, errors: errs}
}

func registerAppointmentRoutes(rg *gin.RouterGroup, appointmentService portssvc.AppointmentSvcFacade, errs errorResponder) {
	h := newAppointmentHandler(appointmentService, errs)

	appointments := rg.Group("/appointments")
	{
		appointments.GET("", h.listAppointments)
		appointments.POST("", h.createAppointment)
		appointments.GET("/:appointmentID", h.getAppointment)
		appointments.PUT("/:appointmentID", h.updateAppointment)
		appointments.DELETE("/:appointmentID", h.deleteAppointment)
	}
}

// listAppointments godoc
// @Summary List appointments
// @Description Retrieves every appointment, latest date first
// @Tags appointments
// @Produce json
// @Success 200 {array} dto.AppointmentResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /appointments [get]
func (h *appointmentHandler) listAppointments(c *gin.Context) {
	appointments, err := h.appointmentService.ListAppointments(c.Request.Context())
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAppointmentResponse(appointments))
}

// createAppointment godoc
// @Summary Create an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body dto.AppointmentRequest true "Appointment"
// @Success 201 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /appointments [post]
func (h *appointmentHandler) createAppointment(c *gin.Context) {
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.respondBindError(c, err)
		return
	}
	appointment, err := req.ToAppointment()
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	created, err := h.appointmentService.CreateAppointment(c.Request.Context(), appointment)
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAppointmentResponse(created))
}

// getAppointment godoc
// @Summary Get an appointment
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /appointments/{appointmentID} [get]
func (h *appointmentHandler) getAppointment(c *gin.Context) {
	appointment, err := h.appointmentService.GetAppointmentByID(c.Request.Context(), c.Param("appointmentID"))
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

// updateAppointment godoc
// @Summary Replace an appointment
// @Description Replaces every field of an appointment; an omitted status resets to pending
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "Appointment ID"
// @Param appointment body dto.AppointmentRequest true "Appointment"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /appointments/{appointmentID} [put]
func (h *appointmentHandler) updateAppointment(c *gin.Context) {
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.respondBindError(c, err)
		return
	}
	appointment, err := req.ToAppointment()
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	updated, err := h.appointmentService.UpdateAppointment(c.Request.Context(), c.Param("appointmentID"), appointment)
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(updated))
}

// deleteAppointment godoc
// @Summary Delete an appointment
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "Appointment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /appointments/{appointmentID} [delete]
func (h *appointmentHandler) deleteAppointment(c *gin.Context) {
	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), c.Param("appointmentID")); err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Appointment deleted successfully"})
}
