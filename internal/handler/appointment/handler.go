package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/middleware"
	"github.com/Marxcruz/hospital-api/internal/model"
	appointmentsvc "github.com/Marxcruz/hospital-api/internal/service/appointment"
	"github.com/Marxcruz/hospital-api/pkg/httputil"
)

type Handler struct {
	service *appointmentsvc.Service
}

func NewHandler(service *appointmentsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments")
	{
		// Booking stays public so visitors can request a cita without an
		// account.
		appointments.POST("/create-appointment", h.Create)

		appointments.GET("/get-all-appointment", auth.RequireRole(model.RoleAdministrador), h.ListAll)
		appointments.DELETE("/delete-appointment/:id", auth.RequireRole(model.RoleAdministrador), h.Delete)
		appointments.PUT("/update-status-appointment/:id", auth.RequireRole(model.RoleAdministrador), h.UpdateStatus)

		appointments.GET("/doctor-appointments", auth.RequireRole(model.RoleDoctor), h.DoctorAppointments)
		appointments.GET("/doctor-patients", auth.RequireRole(model.RoleDoctor), h.DoctorPatients)
		appointments.PUT("/doctor-update-appointment/:id", auth.RequireRole(model.RoleDoctor), h.UpdateStatus)
		appointments.GET("/patient-appointments/:id", auth.RequireRole(model.RoleDoctor), h.PatientAppointments)

		appointments.GET("/my-appointments", auth.RequireRole(model.RolePaciente), h.MyAppointments)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, httputil.H{"message": "cita registrada", "appointment": apt})
}

func (h *Handler) ListAll(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"appointments": appointments})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"message": "cita eliminada"})
}

// UpdateStatus serves both the admin and the doctor update routes; the
// payload and semantics are identical, only the guarding role differs.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"message": "estado de la cita actualizado", "appointment": apt})
}

func (h *Handler) DoctorAppointments(c *gin.Context) {
	doctor := middleware.CurrentUser(c)

	appointments, err := h.service.ListByDoctor(c.Request.Context(), doctor.ID)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"appointments": appointments})
}

// DoctorPatients lists the distinct patients behind a doctor's
// appointments, one representative appointment per identificacion.
func (h *Handler) DoctorPatients(c *gin.Context) {
	doctor := middleware.CurrentUser(c)

	patients, err := h.service.DoctorPatients(c.Request.Context(), doctor.ID)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"patients": patients})
}

func (h *Handler) PatientAppointments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	appointments, err := h.service.ListByPatient(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"appointments": appointments})
}

func (h *Handler) MyAppointments(c *gin.Context) {
	patient := middleware.CurrentUser(c)

	appointments, err := h.service.ListByPatient(c.Request.Context(), patient.ID)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"appointments": appointments})
}
